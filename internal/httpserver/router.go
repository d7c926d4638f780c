package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	customersvc "pix-limit-service/internal/service/customer"
	transactionsvc "pix-limit-service/internal/service/transaction"
)

// Deps carries the services the router exposes.
type Deps struct {
	CustomerSvc    *customersvc.Service
	TransactionSvc *transactionsvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/customers", createCustomerHandler(deps.CustomerSvc))
	router.GET("/customers", listCustomersHandler(deps.CustomerSvc))
	router.GET("/customers/:id", getCustomerHandler(deps.CustomerSvc))
	router.GET("/customers/by-document/:document", getCustomerByDocumentHandler(deps.CustomerSvc))
	router.POST("/customers/:id/limit-adjustments", adjustLimitHandler(deps.CustomerSvc))
	router.PUT("/customers/:id/account", replaceAccountHandler(deps.CustomerSvc))
	router.POST("/customers/:id/deactivation", deactivateHandler(deps.CustomerSvc))
	router.POST("/customers/:id/reactivation", reactivateHandler(deps.CustomerSvc))

	router.POST("/transactions", executeTransactionHandler(deps.TransactionSvc))

	return router
}
