package legacyxo

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/payfront/legacyxo/ectoken"
)

// Logger is the leveled logging contract consumed across the package.
type Logger = glog.Logger

// LoggerProvider resolves named loggers.
type LoggerProvider = glog.LoggerProvider

// EligibilityGate decides whether the in-overlay checkout flow may be used
// for the current browsing context. It is consulted fresh at every decision
// point and its result is never cached.
type EligibilityGate interface {
	IsEligible() bool
}

// EligibilityFunc lifts bare functions into [EligibilityGate].
type EligibilityFunc func() bool

// IsEligible evaluates the wrapped predicate.
func (f EligibilityFunc) IsEligible() bool { return f() }

// Navigator performs full-page navigation away from the embedding page.
type Navigator interface {
	Redirect(url string) error
}

// NavigatorFunc lifts bare functions into [Navigator].
type NavigatorFunc func(url string) error

// Redirect delegates to the wrapped function.
func (f NavigatorFunc) Redirect(url string) error { return f(url) }

// TokenProvider supplies the payment token for a component instance. In
// precall mode it blocks until the embedding page settles the pending
// acquisition through startFlow or closeFlow.
type TokenProvider func(ctx context.Context) (ectoken.Token, error)

// InitRequest carries everything the modern component needs to initialize:
// marshalable props plus the callback surface owned by the session.
type InitRequest struct {
	Props        Props
	PaymentToken TokenProvider
	OnAuthorize  func(returnURL string) error
	OnCancel     func(cancelURL string) error
	Fallback     func(url string) error
}

// Component is one live instance of the modern checkout widget. The
// PaymentToken provider must not be invoked before Init returns.
type Component interface {
	Render(ctx context.Context) error
	RenderHijack(ctx context.Context, formSelector string) error
	UpdateProps(ctx context.Context, patch PropsPatch) error
	Close(ctx context.Context) error
	CloseParentTemplate(ctx context.Context) error
}

// ComponentFactory initializes component instances.
type ComponentFactory interface {
	Init(req InitRequest) (Component, error)
}

// ComponentFactoryFunc lifts bare functions into [ComponentFactory].
type ComponentFactoryFunc func(req InitRequest) (Component, error)

// Init delegates to the wrapped function.
func (f ComponentFactoryFunc) Init(req InitRequest) (Component, error) { return f(req) }

// Element is a DOM node discovered during setup. The click handler reports
// whether default navigation should be prevented.
type Element interface {
	ID() string
	Attr(name string) string
	OnClick(handler func() (preventDefault bool))
}

// Page exposes the subset of document querying the bridge needs.
type Page interface {
	QueryAll(selector string) []Element
}

// Button couples a discovered element with the optional overrides supplied
// by the button renderer.
type Button struct {
	Element   Element
	Handler   func() error
	Condition func() bool
}

// ButtonRenderer discovers and renders merchant buttons for a setup id.
type ButtonRenderer interface {
	RenderButtons(ctx context.Context, id string, opts SetupOptions) ([]Button, error)
}

// SessionHintStore supplies the persisted identity hint attached to
// component props, typically backed by local storage on the page.
type SessionHintStore interface {
	SessionHint() string
}
