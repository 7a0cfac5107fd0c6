package legacyxo

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"sync"

	canonicaljson "github.com/gibson042/canonicaljson-go"
	glog "github.com/goliatone/go-logger/glog"
)

// Namespace is the page-global object the legacy integration exposed. The
// embedding environment owns the value; Install populates it at most once.
type Namespace struct {
	mu  sync.Mutex
	api *LegacyAPI
}

// API returns the installed legacy surface, nil before Install.
func (n *Namespace) API() *LegacyAPI {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.api
}

func (n *Namespace) install(api *LegacyAPI) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.api != nil {
		return false
	}
	n.api = api
	return true
}

// SetupOptions mirror the options object merchants passed to the legacy
// setup call.
type SetupOptions struct {
	Locale      string      `json:"locale,omitempty" validate:"omitempty,xolocale"`
	Environment Environment `json:"environment,omitempty" validate:"omitempty,oneof=production sandbox"`
	// Selector, when set, discovers additional button elements on the page.
	Selector string `json:"button,omitempty"`
	// Click overrides the default click behavior for discovered buttons.
	Click func() error `json:"-"`
	// Condition gates wiring per discovered button.
	Condition func() bool `json:"-"`
}

// Validate checks the options against the legacy setup schema.
func (o SetupOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return normalizeValidationError(err)
	}
	return nil
}

// LegacyAPI maps the four public legacy entry points onto the flow bridge
// and checkout sessions.
type LegacyAPI struct {
	cfg    config
	config *Config
	slots  *Slots
	bridge *FlowBridge
	logger Logger
	ready  *readyHook

	mu      sync.Mutex
	wired   map[string]struct{}
	session *CheckoutSession
}

// Install wires the legacy surface into ns. A namespace that already
// exposes an installation is left untouched: the duplicate attempt is
// logged as an error and the original surface returned alongside the
// duplicate-install error.
func Install(ns *Namespace, opts ...Option) (*LegacyAPI, error) {
	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.factory == nil {
		panic("legacyxo: component factory is required")
	}
	if cfg.navigator == nil {
		panic("legacyxo: navigator is required")
	}
	if cfg.eligibility == nil {
		panic("legacyxo: eligibility gate is required")
	}

	_, logger := glog.Resolve("legacyxo", cfg.loggerProvider, cfg.logger)
	logger = glog.Ensure(logger)

	conf := NewConfig(cfg.environment)
	if cfg.checkoutURL != "" {
		conf.SetCheckoutURL(cfg.checkoutURL)
	}

	slots := &Slots{}
	api := &LegacyAPI{
		cfg:    cfg,
		config: conf,
		slots:  slots,
		bridge: newFlowBridge(slots, cfg.eligibility, cfg.navigator, conf, logger),
		logger: logger,
		ready:  &readyHook{},
		wired:  map[string]struct{}{},
	}
	api.installDefaultSlots()

	if !ns.install(api) {
		logger.Error("legacy checkout api already installed; refusing to overwrite")
		return ns.API(), errAlreadyInstalled()
	}
	logger.Debug("legacy checkout api installed", "environment", conf.Environment())
	return api, nil
}

// Config exposes the installation's environment and locale state.
func (api *LegacyAPI) Config() *Config { return api.config }

// Setup resolves locale configuration, discovers merchant buttons, and
// attaches a click interceptor to each.
func (api *LegacyAPI) Setup(ctx context.Context, id string, opts SetupOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Environment != "" {
		api.config.SetEnvironment(opts.Environment)
	}
	if opts.Locale != "" {
		// Fire and forget: resolution failures degrade to the default
		// locale and are only logged.
		if err := api.config.ResolveLocale(opts.Locale); err != nil {
			api.logger.Warn("resolve locale", "locale", opts.Locale, "error", err)
		}
	}

	var buttons []Button
	if api.cfg.buttons != nil {
		discovered, err := api.cfg.buttons.RenderButtons(ctx, id, opts)
		if err != nil {
			api.logger.Error("render merchant buttons", "id", id, "error", err)
		} else {
			buttons = append(buttons, discovered...)
		}
	}
	if opts.Selector != "" && api.cfg.page != nil {
		for _, el := range api.cfg.page.QueryAll(opts.Selector) {
			buttons = append(buttons, Button{Element: el})
		}
	}

	for _, btn := range buttons {
		api.wireButton(id, opts, btn)
	}
	return nil
}

// wireButton attaches the click interceptor to one discovered element,
// at most once per (id, element, options) combination.
func (api *LegacyAPI) wireButton(id string, opts SetupOptions, btn Button) {
	if btn.Element == nil {
		return
	}
	if btn.Condition != nil && !btn.Condition() {
		return
	}
	if opts.Condition != nil && !opts.Condition() {
		return
	}

	if fp, err := setupFingerprint(id, btn.Element.ID(), opts); err == nil {
		api.mu.Lock()
		if _, dup := api.wired[fp]; dup {
			api.mu.Unlock()
			api.logger.Debug("button already wired", "id", id, "element", btn.Element.ID())
			return
		}
		api.wired[fp] = struct{}{}
		api.mu.Unlock()
	} else {
		api.logger.Warn("fingerprint setup options", "id", id, "error", err)
	}

	handler := btn.Handler
	if handler == nil {
		handler = opts.Click
	}

	btn.Element.OnClick(func() bool {
		if !api.cfg.eligibility.IsEligible() {
			// Graceful degradation: native form submission proceeds
			// unmodified in ineligible contexts.
			api.logger.Debug("click in ineligible context; native submission proceeds",
				"id", id, "element", btn.Element.ID())
			return false
		}
		if handler != nil {
			if err := handler(); err != nil {
				api.logger.Error("merchant click handler", "id", id, "error", err)
			}
			return true
		}
		if err := api.openSession(context.Background(), OpenOptions{}); err != nil {
			api.logger.Error("open checkout session", "id", id, "error", err)
		}
		return true
	})
}

// setupFingerprint derives a stable identity for a wiring attempt from the
// canonical JSON of its inputs.
func setupFingerprint(id, elementID string, opts SetupOptions) (string, error) {
	payload, err := canonicaljson.Marshal(struct {
		ID      string       `json:"id"`
		Element string       `json:"element"`
		Options SetupOptions `json:"options"`
	}{ID: id, Element: elementID, Options: opts})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

// InitXO opens a checkout component with no initial token (pure precall
// mode), gated on eligibility.
func (api *LegacyAPI) InitXO() {
	api.slots.InvokeInitXO()
}

// StartFlow hands a token or redirect URL to the active flow: the armed
// capture when a component is awaiting its token, otherwise the direct
// synchronous decision path. Protocol violations surface to the caller.
func (api *LegacyAPI) StartFlow(raw string) error {
	return api.slots.InvokeStartFlow(raw)
}

// CloseFlow closes the active flow. Outside an open flow it is a no-op that
// only logs.
func (api *LegacyAPI) CloseFlow() {
	api.slots.InvokeCloseFlow()
}

// OnEvent is the legacy event-registration stub; the modern surface has no
// eventing, so registration attempts are only logged.
func (api *LegacyAPI) OnEvent(name string, _ func()) {
	api.logger.Info("eventing is not supported by the legacy checkout surface", "event", name)
}

// OnReady schedules fn to run once after the page-ready notification.
// Registrations after ready fire immediately.
func (api *LegacyAPI) OnReady(fn func()) {
	api.ready.Subscribe(fn)
}

// NotifyReady marks the page ready, fires pending ready callbacks, and
// auto-wires marker-attribute buttons.
func (api *LegacyAPI) NotifyReady(ctx context.Context) {
	api.ready.Notify()
	api.ScanPage(ctx)
}

func (api *LegacyAPI) installDefaultSlots() {
	api.slots.set(api.initXODefault, api.startFlowDefault, api.closeFlowDefault)
}

// initXODefault is the idle-slot behavior for initXO: eligibility-gated
// precall open.
func (api *LegacyAPI) initXODefault() {
	if !api.cfg.eligibility.IsEligible() {
		api.logger.Debug("initXO ignored; context ineligible for overlay checkout")
		return
	}
	if err := api.openSession(context.Background(), OpenOptions{}); err != nil {
		api.logger.Error("initXO open failed", "error", err)
	}
}

// startFlowDefault is the idle-slot behavior for startFlow: the direct
// synchronous decision path on a fresh session.
func (api *LegacyAPI) startFlowDefault(raw string) error {
	session := api.newSession()
	api.mu.Lock()
	api.session = session
	api.mu.Unlock()
	return session.StartFlow(context.Background(), raw)
}

// closeFlowDefault is the idle-slot behavior for closeFlow.
func (api *LegacyAPI) closeFlowDefault() {
	api.logger.Warn("closeFlow called with no checkout flow pending")
}

func (api *LegacyAPI) openSession(ctx context.Context, opts OpenOptions) error {
	session := api.newSession()
	api.mu.Lock()
	api.session = session
	api.mu.Unlock()
	return session.Open(ctx, opts)
}

func (api *LegacyAPI) newSession() *CheckoutSession {
	return newCheckoutSession(api.bridge, &api.cfg, api.config, api.logger)
}
