package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/approval-workflow/internal"
	"github.com/frahmantamala/approval-workflow/internal/authz"
	"github.com/frahmantamala/approval-workflow/internal/category"
	categoryPostgres "github.com/frahmantamala/approval-workflow/internal/category/postgres"
	"github.com/frahmantamala/approval-workflow/internal/core/events"
	"github.com/frahmantamala/approval-workflow/internal/directory"
	directoryPostgres "github.com/frahmantamala/approval-workflow/internal/directory/postgres"
	"github.com/frahmantamala/approval-workflow/internal/expense"
	expensePostgres "github.com/frahmantamala/approval-workflow/internal/expense/postgres"
	"github.com/frahmantamala/approval-workflow/internal/sequence"
	"github.com/frahmantamala/approval-workflow/internal/transport/rest"
	"github.com/frahmantamala/approval-workflow/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize ORM: %v\n", err)
		os.Exit(1)
	}

	seq, err := sequence.New(cfg.Workflow.ApprovalSteps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid approval sequence: %v\n", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	wireRoutes(router, db, gormDB, seq, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting HTTP server", "address", addr, "approval_steps", cfg.Workflow.ApprovalSteps)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
		if err := db.Close(); err != nil {
			log.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	log.Info("server stopped")
}

func wireRoutes(router *chi.Mux, db *sqlx.DB, gormDB *gorm.DB, seq *sequence.Sequence, log *slog.Logger) {
	userRepo := directoryPostgres.NewUserRepository(gormDB)
	expenseRepo := expensePostgres.NewExpenseRepository(gormDB)
	categoryRepo := categoryPostgres.NewCategoryRepository(gormDB)

	directoryService := directory.NewService(userRepo, log)
	resolver := authz.NewResolver(seq, directoryService, log)

	bus := events.NewEventBus(log)
	bus.Subscribe(events.EventTypeExpenseDecisionApplied, func(ctx context.Context, event events.Event) error {
		log.Info("audit: decision recorded",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	expenseService := expense.NewService(expenseRepo, directoryService, seq, resolver, bus, log)
	categoryService := category.NewService(categoryRepo, log)

	rest.RegisterAllRoutes(
		router,
		db.DB,
		directoryService,
		directory.NewHandler(directoryService),
		expense.NewHandler(expenseService),
		category.NewHandler(categoryService),
		log,
	)
}

// initDB opens the pgx-backed connection pool used for health checks and
// handed to GORM.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
