package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFiles are loaded into the process environment before variables are
// read. Variables that are already set are not overridden.
var envFiles = []string{".env"}

// parseEnv overlays cfg with KAMBAZ_* variables (and VERCEL_URL).
// It panics on an unreadable .env file or an invalid timeout.
func parseEnv(cfg *Config) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Errorf("load %s: %w", f, err))
		}
	}

	v := viper.New()
	v.SetEnvPrefix("KAMBAZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("vercel_url", "VERCEL_URL")

	setIfNotEmpty(&cfg.APIBase, v.GetString("api_base"))
	setIfNotEmpty(&cfg.Origin, v.GetString("origin"))
	setIfNotEmpty(&cfg.VercelURL, v.GetString("vercel_url"))
	setIfNotEmpty(&cfg.AssignmentAPI, v.GetString("assignment_api"))
	setIfNotEmpty(&cfg.TodosAPI, v.GetString("todos_api"))
	setIfNotEmpty(&cfg.SessionDB, v.GetString("session_db"))
	setIfNotEmpty(&cfg.LogLevel, v.GetString("log_level"))
	setIfNotEmpty(&cfg.LogBackend, v.GetString("log_backend"))

	if raw := v.GetString("request_timeout"); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

// parseTimeout accepts a bare number of seconds or a Go duration string.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid request timeout %q", raw)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid request timeout %q", raw)
	}
	return d, nil
}
