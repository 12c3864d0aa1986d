// Package config loads typed configuration from the environment.
//
// Values are read from optional .env files (github.com/joho/godotenv) and
// then parsed into a struct by field tags (github.com/caarlos0/env/v11):
//
//	type Config struct {
//	    APIURL string        `env:"NW_API_URL" envDefault:"http://localhost:5000"`
//	    Flash  time.Duration `env:"NW_FLASH_DURATION" envDefault:"3s"`
//	}
//
//	cfg, err := config.Load[Config]()
//
// Variables already present in the process environment win over .env
// files. Missing .env files are not an error.
package config
