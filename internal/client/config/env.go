package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with the UDLM_* variables that are set. Unset
// variables keep the value from earlier sources.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
