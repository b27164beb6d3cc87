// Package cli implements the interactive clinicdesk front end: a REPL over
// the auth service and the three entity repositories.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/config"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
	"github.com/dmitrijs2005/clinicdesk/internal/repositories/appointments"
	"github.com/dmitrijs2005/clinicdesk/internal/repositories/doctors"
	"github.com/dmitrijs2005/clinicdesk/internal/repositories/patients"
	"github.com/dmitrijs2005/clinicdesk/internal/services"
	"github.com/dmitrijs2005/clinicdesk/internal/session"
	"github.com/dmitrijs2005/clinicdesk/internal/storage"

	_ "modernc.org/sqlite"
)

// App wires the clinicdesk components together and executes REPL commands.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	sess         *session.Manager
	auth         services.AuthService
	patients     patients.Repository
	doctors      doctors.Repository
	appointments appointments.Repository

	reader *bufio.Reader
}

// NewApp opens the local database, applies migrations and wires the
// services and repositories.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	sess := session.NewManager(db)

	return &App{
		config:       c,
		log:          log,
		db:           db,
		sess:         sess,
		auth:         services.NewAuth(db, sess),
		patients:     patients.NewSQLiteRepository(db, sess),
		doctors:      doctors.NewSQLiteRepository(db, sess),
		appointments: appointments.NewSQLiteRepository(db, sess),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the REPL on stdin and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()

	fmt.Println("clinicdesk CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus(ctx context.Context) string {
	p := a.sess.Current(ctx)
	if p == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", p.Email)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.sess.IsAuthenticated(ctx)
}
