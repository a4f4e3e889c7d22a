package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/handlers"
	"github.com/mmsanduk/mahall_backend/middlewares"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, ginErr := range c.Errors {
			cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
			logger.WithFields(logrus.Fields{
				"path":           c.Request.URL.Path,
				"correlation_id": cid,
			}).Error(ginErr.Error())
		}
	}
}

func main() {
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until the DB is ready, app endpoints return 503.
	r := gin.New()

	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		// Gate app endpoints on DB readiness. Redis is optional.
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production requires an explicit allowlist via CORS_ALLOWED_ORIGINS.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.AuthMiddleware())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	api := r.Group("/api/v1", middlewares.RequireTenant())
	{
		api.GET("/ledgers", handlers.ListLedgersHandler())
		api.GET("/ledgers/:id", handlers.GetLedgerHandler())
		api.GET("/categories", handlers.ListCategoriesHandler())
		api.GET("/categories/:id", handlers.GetCategoryHandler())
		api.GET("/institutes", handlers.ListInstitutesHandler())
		api.GET("/institutes/:id", handlers.GetInstituteHandler())

		api.POST("/transactions", handlers.ManualEntryHandler())

		api.POST("/institute-accounts", handlers.CreateInstituteAccountHandler())
		api.GET("/institute-accounts", handlers.ListInstituteAccountsHandler())
		api.GET("/institute-accounts/:id", handlers.GetInstituteAccountHandler())
		api.PUT("/institute-accounts/:id", handlers.UpdateInstituteAccountHandler())
		api.POST("/institute-accounts/:id/activate", handlers.SetInstituteAccountActiveHandler(true))
		api.POST("/institute-accounts/:id/deactivate", handlers.SetInstituteAccountActiveHandler(false))

		api.POST("/salaries", handlers.CreateSalaryHandler())
		api.GET("/salaries", handlers.ListSalariesHandler())
		api.GET("/salaries/:id", handlers.GetSalaryHandler())
		api.POST("/salaries/:id/pay", handlers.PaySalaryHandler())
		api.PUT("/salaries/:id", handlers.UpdateSalaryHandler())
		api.DELETE("/salaries/:id", handlers.DeleteSalaryHandler())

		api.POST("/petty-cash/funds", handlers.CreatePettyCashFundHandler())
		api.GET("/petty-cash/funds/:id", handlers.GetPettyCashFundHandler())
		api.POST("/petty-cash/funds/:id/replenish", handlers.ReplenishPettyCashFundHandler())
		api.POST("/petty-cash/funds/:id/close", handlers.ClosePettyCashFundHandler())
		api.POST("/petty-cash/vouchers", handlers.AddPettyCashVoucherHandler())
		api.PUT("/petty-cash/vouchers/:id", handlers.UpdatePettyCashVoucherHandler())
		api.DELETE("/petty-cash/vouchers/:id", handlers.DeletePettyCashVoucherHandler())

		api.GET("/reports/day-book", handlers.DayBookHandler())
		api.GET("/reports/day-book/export", handlers.DayBookExportHandler())
		api.GET("/reports/trial-balance", handlers.TrialBalanceHandler())
		api.GET("/reports/trial-balance/export", handlers.TrialBalanceExportHandler())
		api.GET("/reports/balance-sheet", handlers.BalanceSheetHandler())
		api.GET("/reports/ledger-statement", handlers.LedgerStatementHandler())
		api.GET("/reports/income-expenditure", handlers.IncomeExpenditureHandler())
		api.GET("/reports/consolidated", handlers.ConsolidatedHandler())
	}

	// Start listening immediately (startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	// AutoMigrate can run DDL that blocks tables; allow running migrations as
	// a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	// Posting reads ledgers and account balances it just wrote; READ COMMITTED
	// keeps those reads current without gap locking.
	for attempt := 1; ; attempt++ {
		err := db.Exec("SET SESSION TRANSACTION ISOLATION LEVEL READ COMMITTED").Error
		if err == nil {
			break
		}
		sleep := time.Second * time.Duration(1<<minInt(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		logger.WithFields(logrus.Fields{
			"field":   "database",
			"attempt": attempt,
		}).Warn("failed to set isolation level; retrying in " + sleep.String() + ": " + err.Error())
		time.Sleep(sleep)
	}

	log.Println("Server started successfully on port " + port)

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("shutdown error: " + err.Error())
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
