// Package client contains the transport layer of the Kambaz CLI.
//
// # Overview
//
// The package provides:
//  1. API contracts split by resource (AccountAPI, UsersAPI, CoursesAPI,
//     ModulesAPI, AssignmentsAPI) and the Client interface that combines them.
//  2. HTTPClient, a JSON-over-HTTP implementation that carries the session
//     cookie through an http.CookieJar and tags every request with an
//     X-Request-ID header.
//  3. LabClient, the credential-free lab endpoints (welcome text, the lab
//     assignment and the todo list).
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) and Jar, a
//     cookie jar backed by the session database.
//
// # Error Handling
//
// Every wrapper returns (value, error). A non-nil error from a remote call is
// always a *Error whose Kind is one of:
//
//	KindNetwork     no response received            errors.Is(err, ErrUnavailable)
//	KindAuth        401 or 403                      errors.Is(err, ErrUnauthorized)
//	KindValidation  other 4xx                       errors.Is(err, ErrValidation)
//	KindServer      other non-2xx, malformed body   errors.Is(err, ErrServer)
//
// Error.Message holds the server's {"message": ...} text when present, else
// the HTTP status text. Describe renders any error for a notification.
//
// Failures are logged once, at Error level, with method, path, status, kind
// and request_id keys. Nothing is retried.
package client
