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

	"github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/auth"
	authsqlite "github.com/joshwmy/record-management/internal/auth/sqlite"
	"github.com/joshwmy/record-management/internal/core/events"
	"github.com/joshwmy/record-management/internal/dataset"
	datasetsqlite "github.com/joshwmy/record-management/internal/dataset/sqlite"
	"github.com/joshwmy/record-management/internal/incident"
	incidentsqlite "github.com/joshwmy/record-management/internal/incident/sqlite"
	"github.com/joshwmy/record-management/internal/ingest"
	"github.com/joshwmy/record-management/internal/insight"
	"github.com/joshwmy/record-management/internal/session"
	sessionsqlite "github.com/joshwmy/record-management/internal/session/sqlite"
	"github.com/joshwmy/record-management/internal/ticket"
	ticketsqlite "github.com/joshwmy/record-management/internal/ticket/sqlite"
	"github.com/joshwmy/record-management/internal/transport"
	"github.com/joshwmy/record-management/internal/transport/rest"
	"github.com/joshwmy/record-management/internal/user"
	usersqlite "github.com/joshwmy/record-management/internal/user/sqlite"
	"github.com/joshwmy/record-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
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

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Router   *chi.Mux
	Sessions *session.Manager
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to access database handle: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.Sessions, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	// Expired sessions get swept in the background so the table stays small.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, deps.Sessions, deps.Logger)

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func sweepSessions(ctx context.Context, sessions *session.Manager, lg *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed, err := sessions.Sweep()
			if err != nil {
				lg.Warn("session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				lg.Info("expired sessions removed", "count", removed)
			}
		case <-ctx.Done():
			return
		}
	}
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Format)
	lg := logger.Default()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(lg)

	// Sessions
	sessionRepo := sessionsqlite.NewRepository(db)
	tokens := session.NewJWTTokenGenerator(config.Security.SessionSecret)
	sessions := session.NewManager(sessionRepo, tokens, config.Security.SessionDurationOrDefault())

	// Auth
	authRepo := authsqlite.NewRepository(db)
	authService := auth.NewService(
		authRepo,
		sessions,
		bus,
		config.Security.BCryptCost,
		config.Security.LockoutThresholdOrDefault(),
		config.Security.LockoutDurationOrDefault(),
	)
	authHandler := auth.NewHandler(authService, sessions)

	base := transport.NewBaseHandler(lg)

	// Domain records
	incidentRepo := incidentsqlite.NewRepository(db)
	incidentService := incident.NewService(incidentRepo, lg)
	incidentHandler := incident.NewHandler(incidentService, base)

	ticketRepo := ticketsqlite.NewRepository(db)
	ticketService := ticket.NewService(ticketRepo, lg)
	ticketHandler := ticket.NewHandler(ticketService, base)

	datasetRepo := datasetsqlite.NewRepository(db)
	datasetService := dataset.NewService(datasetRepo, lg)
	datasetHandler := dataset.NewHandler(datasetService, base)

	// CSV ingestion
	ingestService := ingest.NewService(incidentRepo, ticketRepo, datasetRepo, bus, lg)
	ingestHandler := ingest.NewHandler(ingestService, base)

	// Admin user management
	userRepo := usersqlite.NewRepository(db)
	userService := user.NewService(userRepo, lg)
	userHandler := user.NewHandler(userService, base)

	// AI insight
	insightClient := insight.NewClient(insight.Config{
		APIURL:  config.Insight.APIURL,
		APIKey:  config.Insight.APIKey,
		Timeout: config.Insight.Timeout,
	}, lg)
	insightHandler := insight.NewHandler(insightClient, base)

	registerEventHandlers(bus, lg)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		Sessions: sessions,
		Handlers: rest.Handlers{
			Auth:     authHandler,
			User:     userHandler,
			Incident: incidentHandler,
			Ticket:   ticketHandler,
			Dataset:  datasetHandler,
			Ingest:   ingestHandler,
			Insight:  insightHandler,
		},
	}, nil
}

// initDB opens the configured database. SQLite is the default for local
// deployments; Postgres is selected by config for shared ones.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DriverOrDefault() {
	case "postgres":
		dialector = postgres.Open(cfg.Source)
	default:
		dialector = sqlite.Open(cfg.Source)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
