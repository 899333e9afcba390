package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))

	api := router.Group("/api")

	ch := &catalogHandlers{svc: deps.Catalog}
	api.GET("/products", ch.listProducts)
	api.GET("/products/:title", ch.getProduct)
	api.GET("/collections", ch.listCollections)
	api.GET("/collections/:title", ch.getCollection)
	api.GET("/search", ch.search)

	carts := &cartHandlers{carts: deps.Carts}
	cart := api.Group("/cart", visitorMiddleware())
	cart.GET("", carts.get)
	cart.DELETE("", carts.clear)
	cart.POST("/lines", carts.addLine)
	cart.PATCH("/lines/:lineId", carts.updateLine)
	cart.DELETE("/lines/:lineId", carts.removeLine)
	cart.POST("/open", carts.open)
	cart.POST("/close", carts.close)

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		// Credentials cannot be combined with a wildcard origin.
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
