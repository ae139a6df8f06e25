package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping/internal/middleware"
	"github.com/ledgerbooks/bookkeeping/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	logger *slog.Logger,
	services *portssvc.ServiceContainer,
) {
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Request-ID"},
	}))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", middleware.MetricsHandler())

	setupAPIV1Routes(r, cfg, logger, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	logger *slog.Logger,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.RateLimit(cfg.RateLimit, logger))

	RegisterTransactionRoutes(v1, services.Transaction)
	registerPeriodRoutes(v1, services.Period, services.YearEnd)
	registerReportingRoutes(v1, services.Reporting)
	registerReferenceRoutes(v1, services.Reference)
}

// RegisterTransactionRoutes registers the ledger transaction routes on the
// group. Exported so tests can mount them against a mock service.
func RegisterTransactionRoutes(v1 *gin.RouterGroup, svc portssvc.TransactionService) {
	h := NewTransactionHandler(svc)

	v1.POST("/transactions", h.Create)
	module := v1.Group("/:module")
	{
		module.GET("/transactions", h.List)
		module.GET("/transactions/:id", h.Get)
		module.PUT("/transactions/:id", h.Edit)
		module.POST("/transactions/:id/void", h.Void)
	}
}

func registerPeriodRoutes(v1 *gin.RouterGroup, periodSvc portssvc.PeriodService, yearEndSvc portssvc.YearEndService) {
	h := NewPeriodHandler(periodSvc, yearEndSvc)

	years := v1.Group("/financial-years")
	{
		years.POST("", h.CreateFinancialYear)
		years.PUT("", h.AdjustFinancialYears)
		years.GET("", h.GetCalendar)
		years.POST("/:year/finalise", h.FinaliseYear)
		years.POST("/:year/rollback", h.RollbackYear)
	}

	settings := v1.Group("/settings")
	{
		settings.GET("/periods", h.GetModuleSettings)
		settings.PUT("/periods", h.UpdateModuleSettings)
	}
}

func registerReportingRoutes(v1 *gin.RouterGroup, svc portssvc.ReportingService) {
	h := NewReportingHandler(svc)

	reports := v1.Group("/reports")
	{
		reports.GET("/trial-balance", h.TrialBalance)
		reports.GET("/aged-balances", h.AgedBalances)
	}
}

func registerReferenceRoutes(v1 *gin.RouterGroup, svc portssvc.ReferenceService) {
	h := NewReferenceHandler(svc)

	v1.POST("/nominals", h.CreateNominal)
	v1.GET("/nominals", h.ListNominals)
	v1.POST("/vat-codes", h.CreateVatCode)
	v1.GET("/vat-codes", h.ListVatCodes)
	v1.POST("/cash-books", h.CreateCashBook)
	v1.GET("/cash-books", h.ListCashBooks)
	v1.POST("/suppliers", h.CreateSupplier)
	v1.GET("/suppliers", h.ListSuppliers)
	v1.POST("/customers", h.CreateCustomer)
	v1.GET("/customers", h.ListCustomers)
}
