// Package config reads server configuration from the environment.
package config

import "github.com/caarlos0/env/v11"

type Config struct {
	Addr        string `env:"APP_ADDR" envDefault:":8080"`
	LogFile     string `env:"APP_LOG_FILE"`
	Development bool   `env:"DEVELOPMENT"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}
