package legacyxo

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Environment selects the checkout host the bridge targets.
type Environment string

const (
	EnvProduction Environment = "production"
	EnvSandbox    Environment = "sandbox"
)

const (
	productionCheckoutURL = "https://www.paypal.com/checkoutnow"
	sandboxCheckoutURL    = "https://www.sandbox.paypal.com/checkoutnow"
)

func defaultCheckoutURL(env Environment) string {
	if env == EnvSandbox {
		return sandboxCheckoutURL
	}
	return productionCheckoutURL
}

// Config carries the per-installation environment, the base checkout URL
// used for full-page redirects, and the mutable locale fields resolved
// during setup.
type Config struct {
	mu          sync.Mutex
	env         Environment
	checkoutURL string
	customURL   bool
	lang        string
	country     string
}

// NewConfig builds a Config for env with the matching default checkout URL.
func NewConfig(env Environment) *Config {
	if env == "" {
		env = EnvProduction
	}
	return &Config{
		env:         env,
		checkoutURL: defaultCheckoutURL(env),
	}
}

// Environment returns the active environment.
func (c *Config) Environment() Environment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env
}

// SetEnvironment switches environments, updating the checkout URL unless a
// custom URL was set explicitly.
func (c *Config) SetEnvironment(env Environment) {
	if env == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = env
	if !c.customURL {
		c.checkoutURL = defaultCheckoutURL(env)
	}
}

// CheckoutURL returns the base URL full-page redirects are built against.
func (c *Config) CheckoutURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkoutURL
}

// SetCheckoutURL overrides the base checkout URL for both environments.
func (c *Config) SetCheckoutURL(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkoutURL = url
	c.customURL = true
}

// Locale returns the resolved language and country codes, empty until a
// locale has been resolved.
func (c *Config) Locale() (lang, country string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang, c.country
}

// ResolveLocale splits a merchant locale such as "en_US" into its language
// and country parts and stores them on the config. Unparseable locales leave
// the config untouched.
func (c *Config) ResolveLocale(locale string) error {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return errBadInput("locale is required", nil)
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return errBadInput("unrecognized locale", map[string]any{"locale": locale})
	}
	base, _ := tag.Base()
	region, _ := tag.Region()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = base.String()
	c.country = region.String()
	return nil
}
