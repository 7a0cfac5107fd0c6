package legacyxo

import "testing"

func TestPropsValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		props   Props
		wantErr bool
	}{
		"zero value":      {props: Props{}},
		"complete":        {props: Props{Token: "EC-1AB23456CD789012E", URL: "https://www.paypal.com/checkoutnow?token=EC-1AB23456CD789012E", Locale: "en_US", Environment: EnvSandbox}},
		"overlong token":  {props: Props{Token: "1AB23456CD789012EFG"}, wantErr: true},
		"short token":     {props: Props{Token: "EC-SHORT"}, wantErr: true},
		"relative url":    {props: Props{URL: "checkoutnow?token=x"}, wantErr: true},
		"bad locale":      {props: Props{Locale: "english"}, wantErr: true},
		"bad environment": {props: Props{Environment: "staging"}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.props.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate accepted %+v", tt.props)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%+v) returned error: %v", tt.props, err)
			}
		})
	}
}

func TestPropsMerge(t *testing.T) {
	t.Parallel()

	base := Props{
		SessionID:   "s-1",
		AccountHint: "buyer@example.com",
		Token:       "EC-1AB23456CD789012E",
		Environment: EnvProduction,
	}

	t.Run("patch overrides only its fields", func(t *testing.T) {
		t.Parallel()

		merged, err := base.Merge(PropsPatch{URL: "https://www.paypal.com/checkoutnow?token=EC-1AB23456CD789012E"})
		if err != nil {
			t.Fatalf("Merge returned error: %v", err)
		}
		if merged.URL != "https://www.paypal.com/checkoutnow?token=EC-1AB23456CD789012E" {
			t.Fatalf("merged url = %q", merged.URL)
		}
		if merged.SessionID != base.SessionID || merged.Token != base.Token || merged.AccountHint != base.AccountHint {
			t.Fatalf("merge must preserve untouched fields, got %+v", merged)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		t.Parallel()

		merged, err := base.Merge(PropsPatch{})
		if err != nil {
			t.Fatalf("Merge returned error: %v", err)
		}
		if merged != base {
			t.Fatalf("empty patch changed props: %+v", merged)
		}
	})
}
