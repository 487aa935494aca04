package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/config"
	"github.com/dmitrijs2005/kambaz/internal/client/services"
	"github.com/dmitrijs2005/kambaz/internal/client/session"
	"github.com/dmitrijs2005/kambaz/internal/filex"
	"github.com/dmitrijs2005/kambaz/internal/logging"
)

// App is the interactive client: one session, one mounted screen at a time.
type App struct {
	config  *config.Config
	api     client.Client
	lab     client.LabAPI
	session *session.Session
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	db      *sql.DB

	mu     sync.Mutex
	screen services.Screen
	search string
}

// NewApp opens the session database, restores the cookie jar and builds the
// REST clients for cfg.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dsn, err := filex.EnsureDirFor(c.SessionDB)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		logger.Error(ctx, "error initializing database", "dsn", dsn, "error", err)
		return nil, err
	}

	jar, err := client.NewJar(ctx, db, c.APIBase, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(c.APIBase,
		client.WithJar(jar),
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)
	lab := client.NewLabClient(c.APIBase, c.AssignmentAPI, c.TodosAPI,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)

	return &App{
		config:  c,
		api:     api,
		lab:     lab,
		session: session.New(api, jar, logger),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		db:      db,
	}, nil
}

// Run restores the session and serves the REPL until the user quits or the
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to Kambaz CLI (type 'help' for commands)")
	if a.config != nil && a.config.PointsAtLocalhost() {
		a.logger.Warn(ctx, "using the local API server", "base", a.config.APIBase)
	}

	a.session.Init(ctx)
	if u, ok := a.session.Current(); ok {
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", u.Username, u.Role)
	}

	runREPL(session.NewContext(ctx, a.session), a, a.status, a.reader)
}

// Close unmounts the screen and releases the clients and the database.
func (a *App) Close(ctx context.Context) {
	a.unmount()
	if a.api != nil {
		if err := a.api.Close(); err != nil {
			a.logger.Warn(ctx, "closing api client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing session database", "error", err)
		}
	}
}

// env builds the collaborators for a new screen. The session comes from ctx
// when the REPL put one there.
func (a *App) env(ctx context.Context) services.Env {
	s, ok := session.FromContext(ctx)
	if !ok {
		s = a.session
	}
	return services.Env{
		Session:   s,
		Logger:    a.logger,
		Notifier:  consoleNotifier{w: a.out},
		Confirmer: consoleConfirmer{reader: a.reader, w: a.out},
	}
}

func (a *App) isSignedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) current() services.Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

func (a *App) mount(s services.Screen) {
	a.unmount()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.screen = s
	a.search = ""
}

func (a *App) unmount() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen != nil {
		a.screen.Close()
		a.screen = nil
	}
	a.search = ""
}

func (a *App) screenName() string {
	if s := a.current(); s != nil {
		return s.Name()
	}
	return ""
}

// status renders the prompt prefix, e.g. "(iron_man modules RS101)".
func (a *App) status() string {
	s := ""
	if u, ok := a.session.Current(); ok {
		s = u.Username
	}
	if name := a.screenName(); name != "" {
		if s != "" {
			s += " "
		}
		s += name
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
