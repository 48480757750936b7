package router

import (
	"net/http"

	"transactions-api/internal/config"
	"transactions-api/internal/handler"
	"transactions-api/internal/ledger"
	"transactions-api/internal/middleware"
	"transactions-api/internal/session"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine and wires all routes.
func SetupRouter(cfg *config.Config, ldg *ledger.Ledger, sess *session.Provider) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	txHandler := handler.NewTransactionHandler(ldg, sess)
	exportHandler := handler.NewExportHandler(ldg)

	tx := r.Group("/transactions")

	// unguarded: the write path issues an identity when none is presented,
	// and fetch-by-id is public to anyone holding the UUID
	tx.POST("", txHandler.Create)
	tx.GET("/:id", txHandler.Get)

	// guarded reads: no session cookie -> 401
	guarded := tx.Group("")
	guarded.Use(middleware.SessionGuard(sess))
	guarded.GET("", txHandler.List)
	guarded.GET("/summary", txHandler.Summary)
	guarded.GET("/export/csv", exportHandler.ExportCSV)
	guarded.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
