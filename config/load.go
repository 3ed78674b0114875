package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the optional CONFIG_FILE yaml first, then lets environment
// variables override it. DATABASE_URL has to come from one of the two.
func Load() App {
	cfg := App{
		Port: "8080",
		Env:  "dev",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Error("config file unreadable", "path", path, "err", err)
			panic("cannot read " + path)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			slog.Error("config file invalid", "path", path, "err", err)
			panic("cannot parse " + path)
		}
	}

	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}

	if cfg.DatabaseURL == "" {
		slog.Error("required config missing", "key", "DATABASE_URL")
		panic("missing DATABASE_URL")
	}
	return cfg
}
