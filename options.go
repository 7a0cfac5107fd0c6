package legacyxo

type config struct {
	logger         Logger
	loggerProvider LoggerProvider
	eligibility    EligibilityGate
	navigator      Navigator
	factory        ComponentFactory
	buttons        ButtonRenderer
	page           Page
	hints          SessionHintStore
	environment    Environment
	checkoutURL    string
}

// Option customizes the installed bridge.
type Option func(*config)

// WithLogger sets the logging sink.
func WithLogger(logger Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithLoggerProvider sets the named-logger provider.
func WithLoggerProvider(provider LoggerProvider) Option {
	return func(cfg *config) {
		cfg.loggerProvider = provider
	}
}

// WithEligibility sets the predicate consulted before every flow-entry
// decision.
func WithEligibility(gate EligibilityGate) Option {
	return func(cfg *config) {
		cfg.eligibility = gate
	}
}

// WithNavigator sets the full-page redirect collaborator.
func WithNavigator(nav Navigator) Option {
	return func(cfg *config) {
		cfg.navigator = nav
	}
}

// WithComponentFactory sets the modern checkout component factory.
func WithComponentFactory(factory ComponentFactory) Option {
	return func(cfg *config) {
		cfg.factory = factory
	}
}

// WithButtonRenderer sets the button discovery collaborator used by Setup.
func WithButtonRenderer(renderer ButtonRenderer) Option {
	return func(cfg *config) {
		cfg.buttons = renderer
	}
}

// WithPage sets the document-query collaborator used for selector lookups
// and the page-ready auto-scan.
func WithPage(page Page) Option {
	return func(cfg *config) {
		cfg.page = page
	}
}

// WithSessionHints sets the persisted identity hint source.
func WithSessionHints(store SessionHintStore) Option {
	return func(cfg *config) {
		cfg.hints = store
	}
}

// WithEnvironment selects the target checkout environment.
func WithEnvironment(env Environment) Option {
	return func(cfg *config) {
		cfg.environment = env
	}
}

// WithCheckoutURL overrides the base checkout URL used for full-page
// redirects.
func WithCheckoutURL(url string) Option {
	return func(cfg *config) {
		cfg.checkoutURL = url
	}
}
