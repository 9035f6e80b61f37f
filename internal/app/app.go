package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/budgetflow/budgetflow/internal/database"
	"github.com/budgetflow/budgetflow/pkg/reminder"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg       config.Application
	db        *pgxpool.Pool
	publisher reminder.Publisher
	router    *mux.Router
	srv       *http.Server
}

// NewApplication connects to the database, migrates it and builds the router, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	publisher, err := newPublisher(cfg.Amqp)
	if err != nil {
		db.Close()
		return nil, err
	}

	r := mux.NewRouter()
	deps := BuildDependencies(db, cfg, publisher)
	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, publisher: publisher, router: r, srv: srv}, nil
}

func newPublisher(cfg config.Amqp) (reminder.Publisher, error) {
	if !cfg.Enabled {
		log.Info("AMQP disabled, reminders are only logged")
		return reminder.LogPublisher{}, nil
	}
	return reminder.NewAmqpPublisher(cfg.Url, cfg.Exchange, cfg.Queue)
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down and releases the connections.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.close()

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		serveErr <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.srv.Shutdown(shutdownCtx)
}

func (a *Application) close() {
	if err := a.publisher.Close(); err != nil {
		log.Errorf("failed to close reminder publisher: %v", err)
	}
	a.db.Close()
}
