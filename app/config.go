package app

import "time"

// DefaultAPIURL is the backend address used outside the browser.
const DefaultAPIURL = "http://localhost:5000"

// Config is read from the environment with pkg/config.
type Config struct {
	// APIURL is the backend origin. The browser host falls back to the page
	// origin and the CLI to DefaultAPIURL when it is empty.
	APIURL         string        `env:"NW_API_URL"`
	FlashDuration  time.Duration `env:"NW_FLASH_DURATION" envDefault:"3s"`
	RequestTimeout time.Duration `env:"NW_REQUEST_TIMEOUT" envDefault:"30s"`
	LogLevel       string        `env:"NW_LOG_LEVEL" envDefault:"info"`
	Env            string        `env:"NW_ENV" envDefault:"development"`
	DefaultTheme   string        `env:"NW_DEFAULT_THEME" envDefault:"light"`

	// Used by the dev server only.
	ListenAddr string `env:"NW_LISTEN_ADDR" envDefault:":8080"`
	StaticDir  string `env:"NW_STATIC_DIR" envDefault:"static"`
	// CORSOrigins may call the dev server from another origin.
	CORSOrigins []string `env:"NW_CORS_ORIGINS" envSeparator:","`
}
