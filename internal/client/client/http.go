package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/kambaz/internal/common"
	"github.com/dmitrijs2005/kambaz/internal/logging"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// rest performs JSON-over-HTTP calls and maps failures to *Error.
type rest struct {
	httpClient *http.Client
	logger     logging.Logger
}

// call sends body (JSON-encoded, if non-nil) to endpoint and decodes the
// response into out. A nil out discards the body; a *string out receives the
// raw body text. An empty or "null" body leaves out untouched.
func (r *rest) call(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: endpoint, Err: err}
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, u.Path, err)
		}
		defer common.WipeByteArray(b)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: u.Path, Err: err}
	}
	reqID := common.NewRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", common.UserAgent)
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		e := &Error{Kind: KindNetwork, Method: method, Path: u.Path, Err: err}
		r.logFailure(ctx, e, reqID)
		return e
	}
	defer resp.Body.Close()

	r.logger.Debug(ctx, "request completed",
		"method", method, "path", u.Path, "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(resp),
			Method:  method,
			Path:    u.Path,
		}
		r.logFailure(ctx, e, reqID)
		return e
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		e := &Error{Kind: KindNetwork, Status: resp.StatusCode, Method: method, Path: u.Path, Err: err}
		r.logFailure(ctx, e, reqID)
		return e
	}

	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		e := &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed response body", Method: method, Path: u.Path, Err: err}
		r.logFailure(ctx, e, reqID)
		return e
	}
	return nil
}

func (r *rest) logFailure(ctx context.Context, e *Error, reqID string) {
	args := []any{
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"kind", e.Kind.String(),
		"request_id", reqID,
	}
	if e.Message != "" {
		args = append(args, "message", e.Message)
	}
	if e.Err != nil {
		args = append(args, "error", e.Err)
	}
	r.logger.Error(ctx, "request failed", args...)
}

// errorMessage prefers a JSON {"message": "..."} body and falls back to the
// status text.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

// joinURL appends path segments to base, escaping each segment.
func joinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// Option configures an HTTPClient or LabClient.
type Option func(*options)

type options struct {
	httpClient *http.Client
	jar        http.CookieJar
	timeout    time.Duration
	logger     logging.Logger
}

// WithHTTPClient replaces the underlying *http.Client. Timeout and jar options
// are applied on top of it.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithJar sets the cookie jar that carries the session credential.
func WithJar(j http.CookieJar) Option {
	return func(o *options) { o.jar = j }
}

// WithTimeout bounds every request. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildRest(component string, opts []Option) rest {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		cp := *o.httpClient
		hc = &cp
	}
	if o.jar != nil {
		hc.Jar = o.jar
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}

	return rest{httpClient: hc, logger: o.logger.With("component", component)}
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
