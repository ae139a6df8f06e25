package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/adapters/database/pgsql"
	"github.com/ledgerbooks/bookkeeping/internal/core/services"
	"github.com/ledgerbooks/bookkeeping/internal/handlers"
	"github.com/ledgerbooks/bookkeeping/pkg/config"
	"github.com/ledgerbooks/bookkeeping/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, logger, buildServices(cfg, dbPool))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server exited.")
}

// buildServices wires the repositories into the application services.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *portssvc.ServiceContainer {
	txRepo := pgsql.NewTransactionRepository(dbPool)
	matchRepo := pgsql.NewMatchRepository(dbPool)
	nominalRepo := pgsql.NewNominalRepository(dbPool)
	yearEndRepo := pgsql.NewYearEndRepository(dbPool)
	periodRepo := pgsql.NewPeriodRepository(dbPool)
	settingsRepo := pgsql.NewSettingsRepository(dbPool)
	vatRepo := pgsql.NewVatCodeRepository(dbPool)
	cashBookRepo := pgsql.NewCashBookRepository(dbPool)
	partyRepo := pgsql.NewPartyRepository(dbPool)
	auditRepo := pgsql.NewAuditRepository(dbPool)

	accounts := services.SystemAccounts{
		PurchaseControl:  cfg.PurchaseControlNominal,
		SalesControl:     cfg.SalesControlNominal,
		DefaultVat:       cfg.VatControlNominal,
		Suspense:         cfg.SuspenseNominal,
		RetainedEarnings: cfg.RetainedEarningsNominal,
	}

	return &portssvc.ServiceContainer{
		Transaction: services.NewTransactionService(txRepo, matchRepo, nominalRepo, vatRepo, cashBookRepo, periodRepo, settingsRepo, auditRepo, accounts),
		Period:      services.NewPeriodService(periodRepo, settingsRepo, yearEndRepo),
		YearEnd:     services.NewYearEndService(periodRepo, nominalRepo, yearEndRepo, settingsRepo, accounts),
		Reporting:   services.NewReportingService(nominalRepo, txRepo, matchRepo, partyRepo, periodRepo),
		Reference:   services.NewReferenceService(nominalRepo, vatRepo, cashBookRepo, partyRepo),
	}
}

// runMigrations applies pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
