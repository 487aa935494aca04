package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/kambaz/internal/flagx"
	"github.com/dmitrijs2005/kambaz/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	APIBase        string         `json:"api_base"`
	Origin         string         `json:"origin"`
	AssignmentAPI  string         `json:"assignment_api"`
	TodosAPI       string         `json:"todos_api"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionDB      string         `json:"session_db"`
	LogLevel       string         `json:"log_level"`
	LogBackend     string         `json:"log_backend"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.applyTo(cfg)
}

func (jc *JsonConfig) applyTo(cfg *Config) {
	setIfNotEmpty(&cfg.APIBase, jc.APIBase)
	setIfNotEmpty(&cfg.Origin, jc.Origin)
	setIfNotEmpty(&cfg.AssignmentAPI, jc.AssignmentAPI)
	setIfNotEmpty(&cfg.TodosAPI, jc.TodosAPI)
	setIfNotEmpty(&cfg.SessionDB, jc.SessionDB)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	setIfNotEmpty(&cfg.LogBackend, jc.LogBackend)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
