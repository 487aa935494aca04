package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the four remote failure kinds. Every *Error unwraps to exactly
// one of them.
var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("request rejected")
	ErrServer       = errors.New("server error")
)

// Kind classifies a failed remote call.
type Kind int

const (
	// KindNetwork: no response was received.
	KindNetwork Kind = iota + 1
	// KindAuth: 401 or 403.
	KindAuth
	// KindValidation: any other 4xx, e.g. a duplicate username.
	KindValidation
	// KindServer: any other non-2xx, or a 2xx body that could not be decoded.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrUnavailable
	case KindAuth:
		return ErrUnauthorized
	case KindValidation:
		return ErrValidation
	default:
		return ErrServer
	}
}

// kindForStatus maps a non-2xx HTTP status to its Kind.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return KindAuth
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// Error is returned by every remote wrapper on failure.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Method  string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Kind.sentinel())
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf extracts the Kind of a remote failure anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Describe turns err into the one-line text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case KindNetwork:
		return "Network error! Check that the Kambaz server is reachable and try again."
	case KindAuth:
		if e.Message != "" {
			return "Not authorized: " + e.Message
		}
		return "Not authorized. Please sign in."
	case KindValidation:
		if e.Message != "" {
			return "Request rejected: " + e.Message
		}
		return fmt.Sprintf("Request rejected (%d).", e.Status)
	default:
		if e.Status == 0 {
			return "Unexpected response from the server."
		}
		text := e.Message
		if text == "" {
			text = http.StatusText(e.Status)
		}
		return fmt.Sprintf("Error: %d - %s", e.Status, text)
	}
}
