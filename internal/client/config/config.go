package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the UDLM CLI.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values; on
// the command line they are given in whole seconds.
type Config struct {
	ServerURL           string        `env:"UDLM_SERVER_URL"`
	RequestTimeout      time.Duration `env:"UDLM_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"UDLM_ONLINE_CHECK_INTERVAL"`
	Currency            string        `env:"UDLM_CURRENCY"`
	LogLevel            string        `env:"UDLM_LOG_LEVEL"`
	MetricsAddr         string        `env:"UDLM_METRICS_ADDR"`
}

// LoadDefaults populates c with the values used when nothing else is set.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.Currency = "INR"
	c.LogLevel = "info"
	c.MetricsAddr = ""
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then UDLM_* environment variables, then flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
