// Package common contains small helpers and constants shared by the Kambaz
// client packages.
package common

// RequestIDHeaderName carries the per-request correlation id on outbound
// HTTP calls.
const RequestIDHeaderName = "X-Request-ID"

// UserAgent identifies the terminal client to the Kambaz server.
const UserAgent = "kambaz-cli"
