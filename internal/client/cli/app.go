package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/authflow"
	"github.com/tempestapp/tempest-cli/internal/client/config"
	"github.com/tempestapp/tempest-cli/internal/client/idle"
	"github.com/tempestapp/tempest-cli/internal/client/repositories"
	"github.com/tempestapp/tempest-cli/internal/client/repositories/metadata"
	"github.com/tempestapp/tempest-cli/internal/client/session"
	"github.com/tempestapp/tempest-cli/internal/common"
	"github.com/tempestapp/tempest-cli/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	store   *session.Store
	client  api.Client
	flow    *authflow.Flow
	monitor *idle.Monitor
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	// Log to stderr so structured records do not interleave with prompts.
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := repositories.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := metadata.NewSQLiteRepository(db)
	store := session.NewStore(repo, log)
	client := api.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout, store.Token, log)
	flow := authflow.NewFlow(client, store, log)

	app := &App{
		config: c,
		log:    log,
		db:     db,
		store:  store,
		client: client,
		flow:   flow,
		reader: bufio.NewReader(os.Stdin),
	}

	app.monitor = idle.NewMonitor(c.IdleTimeout, c.IdleCountdownSecs, idle.Callbacks{
		OnIdle:   app.onIdle,
		OnTick:   app.onTick,
		OnExpire: app.onExpire,
	})

	// The monitor tracks the session: it runs while a user is signed in
	// and stops the moment the session ends, however it ended.
	store.OnChange(func(s session.Session) {
		if s.Authenticated() {
			app.monitor.Start()
		} else {
			app.monitor.Stop()
		}
	})

	if err := store.Restore(ctx); err != nil && !errors.Is(err, common.ErrNoSession) {
		log.Warn(ctx, "could not restore saved session", "error", err)
	}

	return app, nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) getStatus() string {
	s := a.store.Current()
	if !s.Authenticated() {
		return ""
	}
	name := s.User.Username
	if name == "" {
		name = s.User.Email
	}
	if a.monitor.State() == idle.StateIdle {
		return fmt.Sprintf("(%s, idle %ds)", name, a.monitor.Countdown())
	}
	return fmt.Sprintf("(%s)", name)
}

func (a *App) onIdle(countdown int) {
	printlnFn(fmt.Sprintf("\nYou have been idle! Logging out in %d seconds. Type 'continue' to stay signed in.", countdown))
}

func (a *App) onTick(countdown int) {
	printlnFn(fmt.Sprintf("Logging out in %d seconds...", countdown))
}

func (a *App) onExpire() {
	if err := a.store.Logout(context.Background()); err != nil {
		a.log.Warn(context.Background(), "logout after idle timeout failed", "error", err)
	}
	printlnFn("You were signed out due to inactivity.")
}

// Run greets the user with the site name and blocks in the REPL until the
// user exits or input is exhausted.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	printlnFn(fmt.Sprintf("Welcome to %s CLI (type 'help' for commands)", a.store.SiteName(ctx, a.client)))
	if a.isLoggedIn() {
		printlnFn(fmt.Sprintf("Restored session for %s.", a.store.Current().User.Username))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
