package legacyxo

import "testing"

func TestConfigEnvironmentURLs(t *testing.T) {
	t.Parallel()

	conf := NewConfig(EnvProduction)
	if got := conf.CheckoutURL(); got != "https://www.paypal.com/checkoutnow" {
		t.Fatalf("production url = %q", got)
	}

	conf.SetEnvironment(EnvSandbox)
	if got := conf.CheckoutURL(); got != "https://www.sandbox.paypal.com/checkoutnow" {
		t.Fatalf("sandbox url = %q", got)
	}

	// A custom URL survives environment switches.
	conf.SetCheckoutURL("https://checkout.internal.example/start")
	conf.SetEnvironment(EnvProduction)
	if got := conf.CheckoutURL(); got != "https://checkout.internal.example/start" {
		t.Fatalf("custom url = %q", got)
	}
}

func TestConfigResolveLocale(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		locale      string
		wantErr     bool
		wantLang    string
		wantCountry string
	}{
		"full locale":        {locale: "en_US", wantLang: "en", wantCountry: "US"},
		"other full locale":  {locale: "fr_CA", wantLang: "fr", wantCountry: "CA"},
		"hyphenated variant": {locale: "de-DE", wantLang: "de", wantCountry: "DE"},
		"empty":              {locale: "", wantErr: true},
		"garbage":            {locale: "not a locale", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			conf := NewConfig(EnvProduction)
			err := conf.ResolveLocale(tt.locale)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveLocale(%q) accepted", tt.locale)
				}
				lang, country := conf.Locale()
				if lang != "" || country != "" {
					t.Fatalf("failed resolution must leave config untouched, got %q/%q", lang, country)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveLocale(%q) returned error: %v", tt.locale, err)
			}
			lang, country := conf.Locale()
			if lang != tt.wantLang || country != tt.wantCountry {
				t.Fatalf("locale = %q/%q, want %q/%q", lang, country, tt.wantLang, tt.wantCountry)
			}
		})
	}
}
