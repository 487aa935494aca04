// Package config loads runtime configuration for the Kambaz CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c, -config or --config.
//  3. Environment: a local .env file (godotenv) and then process variables
//     prefixed with KAMBAZ_ (viper). VERCEL_URL is read without the prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the Kambaz API server
//	-t int      per-request timeout (seconds)
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "api_base": "http://localhost:4000",
//	  "origin": "https://kambaz.vercel.app",
//	  "assignment_api": "",
//	  "todos_api": "",
//	  "request_timeout": "15s",
//	  "session_db": "kambaz.db",
//	  "log_level": "info",
//	  "log_backend": "slog"
//	}
//
// After all layers are applied the API base URL is resolved exactly once (see
// ResolveAPIBase) and stored in Config.APIBase, so every client built from the
// same Config talks to the same server.
package config
