package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/kambaz/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/kambaz/internal/dbx"
	"github.com/dmitrijs2005/kambaz/internal/logging"
)

const cookieKeyPrefix = "cookie:"

type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

// Jar is an http.CookieJar for a single API server whose cookies are also
// written to the session database, so a signed-in session survives a restart
// of the CLI. Cookies for other hosts are kept in memory only.
type Jar struct {
	mu     sync.Mutex
	jar    *cookiejar.Jar
	db     *sql.DB
	base   *url.URL
	logger logging.Logger
}

var _ http.CookieJar = (*Jar)(nil)

// NewJar restores the persisted cookies for baseURL from db.
func NewJar(ctx context.Context, db *sql.DB, baseURL string, logger logging.Logger) (*Jar, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	j := &Jar{jar: inner, db: db, base: base, logger: logger.With("component", "cookie_jar")}

	stored, err := metadata.NewSQLiteRepository(db).List(ctx, j.prefix())
	if err != nil {
		return nil, fmt.Errorf("restore cookies: %w", err)
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for key, raw := range stored {
		var sc storedCookie
		if err := json.Unmarshal(raw, &sc); err != nil {
			j.logger.Warn(ctx, "skipping unreadable cookie", "key", key, "error", err)
			continue
		}
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Domain:   sc.Domain,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
		})
	}
	inner.SetCookies(base, cookies)

	return j, nil
}

func (j *Jar) prefix() string {
	return cookieKeyPrefix + j.base.Host + ":"
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// SetCookies stores cookies in memory and, for the API host, persists them.
// Expired or MaxAge<0 cookies remove their persisted copy. Persistence errors
// are logged; the in-memory jar is updated regardless.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.jar.SetCookies(u, cookies)
	j.mu.Unlock()

	if !strings.EqualFold(u.Host, j.base.Host) || len(cookies) == 0 {
		return
	}

	ctx := context.Background()
	if err := j.persist(ctx, cookies); err != nil {
		j.logger.Error(ctx, "persist cookies failed", "host", u.Host, "error", err)
	}
}

func (j *Jar) persist(ctx context.Context, cookies []*http.Cookie) error {
	now := time.Now()
	return dbx.WithTx(ctx, j.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, c := range cookies {
			key := j.prefix() + c.Name
			if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
				if err := repo.Delete(ctx, key); err != nil {
					return err
				}
				continue
			}

			expires := c.Expires
			if c.MaxAge > 0 {
				expires = now.Add(time.Duration(c.MaxAge) * time.Second)
			}
			raw, err := json.Marshal(storedCookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Domain:   c.Domain,
				Expires:  expires,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			})
			if err != nil {
				return err
			}
			if err := repo.Set(ctx, key, raw); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear forgets every cookie, in memory and on disk.
func (j *Jar) Clear(ctx context.Context) error {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.jar = inner
	j.mu.Unlock()

	if err := metadata.NewSQLiteRepository(j.db).DeletePrefix(ctx, cookieKeyPrefix); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}
