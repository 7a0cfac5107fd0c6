package legacyxo

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/payfront/legacyxo/ectoken"
)

// OpenOptions configure one render of the checkout component.
type OpenOptions struct {
	// Token, when set, is the initial payment token: the component is
	// rendered directly instead of going through the precall protocol.
	Token string
	// URL, when set, is the initial display URL for the overlay contents.
	URL string
	// HijackForm, when non-empty, binds the component to intercept the
	// native submission of the selected form instead of a button click.
	HijackForm string
}

// CheckoutSession configures and owns one modern component instance per
// render call.
type CheckoutSession struct {
	id          string
	bridge      *FlowBridge
	factory     ComponentFactory
	navigator   Navigator
	eligibility EligibilityGate
	config      *Config
	hints       SessionHintStore
	logger      Logger

	mu        sync.Mutex
	props     Props
	component Component
}

func newCheckoutSession(bridge *FlowBridge, cfg *config, conf *Config, logger Logger) *CheckoutSession {
	return &CheckoutSession{
		id:          uuid.NewString(),
		bridge:      bridge,
		factory:     cfg.factory,
		navigator:   cfg.navigator,
		eligibility: cfg.eligibility,
		config:      conf,
		hints:       cfg.hints,
		logger:      logger,
	}
}

// ID returns the correlation id attached to log entries for this session.
func (s *CheckoutSession) ID() string { return s.id }

// Open builds the component initialization request and renders it, as an
// overlay or hijacking a form submission per opts.
func (s *CheckoutSession) Open(ctx context.Context, opts OpenOptions) error {
	props := Props{
		SessionID:   s.id,
		Token:       opts.Token,
		URL:         opts.URL,
		Environment: s.config.Environment(),
	}
	if lang, country := s.config.Locale(); lang != "" {
		props.Locale = lang + "_" + country
	}
	if s.hints != nil {
		props.AccountHint = s.hints.SessionHint()
	}
	if err := props.Validate(); err != nil {
		return err
	}

	component, err := s.factory.Init(InitRequest{
		Props:        props,
		PaymentToken: s.paymentToken,
		OnAuthorize:  s.onPaymentAuthorize,
		OnCancel:     s.onPaymentCancel,
		Fallback:     s.fallback,
	})
	if err != nil {
		return errRender(err)
	}

	s.mu.Lock()
	s.props = props
	s.component = component
	s.mu.Unlock()

	if opts.HijackForm != "" {
		s.logger.Debug("hijack-rendering checkout component",
			"session_id", s.id, "form", opts.HijackForm)
		if err := component.RenderHijack(ctx, opts.HijackForm); err != nil {
			return errRender(err)
		}
		return nil
	}
	s.logger.Debug("rendering checkout component overlay", "session_id", s.id)
	if err := component.Render(ctx); err != nil {
		return errRender(err)
	}
	return nil
}

// StartFlow is the direct entry path used when the merchant supplies a
// token before any component is open: the parse, eligibility, and
// redirect-or-render decision happens synchronously, without the slot
// protocol.
func (s *CheckoutSession) StartFlow(ctx context.Context, raw string) error {
	decision, err := s.decide(raw)
	if err != nil {
		return err
	}
	if decision.RedirectURL != "" {
		s.logger.Info("context ineligible for overlay checkout; redirecting",
			"session_id", s.id, "url", decision.RedirectURL)
		return s.navigator.Redirect(decision.RedirectURL)
	}
	return s.Open(ctx, OpenOptions{
		Token: decision.Props.Token,
		URL:   decision.Props.URL,
	})
}

// decide reconciles raw input with the eligibility predicate into a single
// rendering decision. Eligibility is computed fresh on every call.
func (s *CheckoutSession) decide(raw string) (RedirectDecision, error) {
	tok, ok := ectoken.Parse(raw)
	if !ok {
		return RedirectDecision{}, errExpectedToken(raw)
	}
	if !s.eligibility.IsEligible() {
		return RedirectDecision{
			RedirectURL: ectoken.RedirectURL(raw, s.config.CheckoutURL()),
		}, nil
	}
	props := Props{Token: string(tok)}
	if ectoken.IsURLForm(raw) {
		props.URL = raw
	}
	return RedirectDecision{Props: &props}, nil
}

// paymentToken is the provider wired into the component: with an initial
// token present it answers immediately, otherwise it arms the flow bridge
// and waits for the embedding page to settle the acquisition.
func (s *CheckoutSession) paymentToken(ctx context.Context) (ectoken.Token, error) {
	s.mu.Lock()
	component := s.component
	token := s.props.Token
	s.mu.Unlock()

	if token != "" {
		return ectoken.Token(token), nil
	}
	if component == nil {
		return "", errBadInput("payment token requested before the component finished initializing", nil)
	}
	acq := s.bridge.Arm(sessionHandle{s})
	return acq.Await(ctx)
}

// sessionHandle adapts the session into the bridge's component handle so
// prop patches applied while armed also update the session's record.
type sessionHandle struct {
	s *CheckoutSession
}

func (h sessionHandle) UpdateProps(ctx context.Context, patch PropsPatch) error {
	return h.s.updateProps(ctx, patch)
}

func (h sessionHandle) Close(ctx context.Context) error {
	h.s.mu.Lock()
	component := h.s.component
	h.s.mu.Unlock()
	if component == nil {
		return nil
	}
	return component.Close(ctx)
}

// onPaymentAuthorize closes the hosting overlay before redirecting when the
// return URL would not itself take over the page, so the overlay never
// flashes over the destination.
func (s *CheckoutSession) onPaymentAuthorize(returnURL string) error {
	s.closeOverlayUnlessNavigating(returnURL)
	return s.navigator.Redirect(returnURL)
}

// onPaymentCancel follows the same ordering rule as authorize.
func (s *CheckoutSession) onPaymentCancel(cancelURL string) error {
	s.closeOverlayUnlessNavigating(cancelURL)
	return s.navigator.Redirect(cancelURL)
}

// fallback redirects unconditionally; the component invokes it when the
// in-overlay flow cannot proceed.
func (s *CheckoutSession) fallback(url string) error {
	s.logger.Info("component requested fallback to full-page checkout",
		"session_id", s.id, "url", url)
	return s.navigator.Redirect(url)
}

func (s *CheckoutSession) closeOverlayUnlessNavigating(url string) {
	if urlWillRedirectPage(url) {
		return
	}
	s.mu.Lock()
	component := s.component
	s.mu.Unlock()
	if component == nil {
		return
	}
	if err := component.CloseParentTemplate(context.Background()); err != nil {
		s.logger.Warn("close hosting overlay", "session_id", s.id, "error", err)
	}
}

// updateProps merges a patch into the session's record of the live props
// and forwards it to the component.
func (s *CheckoutSession) updateProps(ctx context.Context, patch PropsPatch) error {
	s.mu.Lock()
	component := s.component
	merged, err := s.props.Merge(patch)
	if err == nil {
		s.props = merged
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if component == nil {
		return nil
	}
	return component.UpdateProps(ctx, patch)
}

// urlWillRedirectPage reports whether navigating to url replaces the page.
// Fragment-only and javascript: URLs mutate state in place.
func urlWillRedirectPage(url string) bool {
	switch {
	case url == "":
		return false
	case strings.HasPrefix(url, "#"):
		return false
	case strings.HasPrefix(url, "javascript:"):
		return false
	}
	return true
}
