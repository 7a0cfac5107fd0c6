package legacyxo

import "context"

// Marker attributes consumed by the page-ready auto-scan.
const (
	// ButtonMarkerAttr designates an element as an auto-wired checkout
	// button.
	ButtonMarkerAttr = "data-paypal-button"

	buttonIDAttr      = "data-id"
	buttonEnvAttr     = "data-env"
	buttonSandboxAttr = "data-sandbox"
)

// ScanPage auto-wires every element carrying the button marker attribute,
// deriving the merchant id and target environment from sibling attributes.
// An explicit environment attribute wins; the bare sandbox flag selects the
// sandbox environment.
func (api *LegacyAPI) ScanPage(ctx context.Context) {
	if api.cfg.page == nil {
		return
	}
	for _, el := range api.cfg.page.QueryAll("[" + ButtonMarkerAttr + "]") {
		id := el.Attr(buttonIDAttr)
		env := Environment(el.Attr(buttonEnvAttr))
		if env == "" && el.Attr(buttonSandboxAttr) != "" {
			env = EnvSandbox
		}

		opts := SetupOptions{Environment: env}
		if err := api.Setup(ctx, id, opts); err != nil {
			api.logger.Error("auto-setup scanned button", "id", id, "error", err)
			continue
		}
		api.wireButton(id, opts, Button{Element: el})
	}
}
