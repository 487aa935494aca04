package config

import (
	"net/url"
	"strings"
	"time"
)

const (
	// LocalAPIBase is used when nothing points at a hosted deployment.
	LocalAPIBase = "http://localhost:4000"
	// HostedAPIBase is the API server paired with the hosted web front end.
	HostedAPIBase = "https://kambaz-node-server-app-w7cz.onrender.com"
)

// Config holds runtime settings for the Kambaz CLI.
//
// APIBase is empty until LoadConfig resolves it; Origin and VercelURL only
// take part in that resolution. AssignmentAPI and TodosAPI override the lab
// endpoints and default to paths under APIBase.
type Config struct {
	APIBase        string
	Origin         string
	VercelURL      string
	AssignmentAPI  string
	TodosAPI       string
	RequestTimeout time.Duration
	SessionDB      string
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBase = ""
	c.Origin = ""
	c.VercelURL = ""
	c.AssignmentAPI = ""
	c.TodosAPI = ""
	c.RequestTimeout = 15 * time.Second
	c.SessionDB = "kambaz.db"
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take precedence
// over earlier ones. The API base URL is resolved last.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.APIBase = ResolveAPIBase(cfg.APIBase, cfg.Origin, cfg.VercelURL)
	return cfg
}

// ResolveAPIBase picks the API server URL. An explicit value wins; otherwise a
// Vercel origin or a non-empty VERCEL_URL selects the hosted server; otherwise
// the local development server is used. Trailing slashes are removed.
func ResolveAPIBase(explicit, origin, vercelURL string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return strings.TrimRight(s, "/")
	}
	if isVercelHost(hostOf(origin)) || strings.TrimSpace(vercelURL) != "" {
		return HostedAPIBase
	}
	return LocalAPIBase
}

// PointsAtLocalhost reports whether the resolved API base targets localhost
// while the configured origin is some other host, which usually means the
// hosted deployment is missing an explicit API base.
func (c *Config) PointsAtLocalhost() bool {
	origin := hostOf(c.Origin)
	if origin == "" || origin == "localhost" || origin == "127.0.0.1" {
		return false
	}
	h := hostOf(c.APIBase)
	return h == "localhost" || h == "127.0.0.1"
}

func isVercelHost(host string) bool {
	return strings.Contains(host, "vercel.app") || strings.Contains(host, "vercel.com")
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
