// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coinwatch/internal/handlers"
	"coinwatch/internal/middleware"
	"coinwatch/internal/services"
)

// Deps are the services the router exposes.
type Deps struct {
	Portfolio services.PortfolioServicer
	Coins     services.CoinServicer
	Favorites services.FavoritesServicer
	// APIKey guards mutating routes; empty leaves them open.
	APIKey string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(deps Deps) *gin.Engine {
	portfolioHandler := handlers.NewPortfolioHandler(deps.Portfolio, deps.Coins)
	coinHandler := handlers.NewCoinHandler(deps.Coins)
	favoritesHandler := handlers.NewFavoritesHandler(deps.Favorites)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	requireKey := middleware.APIKeyMiddleware(deps.APIKey)

	// Portfolio routes
	p := v1.Group("/portfolio")
	p.GET("", portfolioHandler.GetPortfolio)
	p.GET("/holdings", portfolioHandler.ListHoldings)
	p.GET("/holdings/:id", portfolioHandler.GetHolding)
	p.GET("/transactions", portfolioHandler.ListTransactions)
	p.POST("/buy", requireKey, portfolioHandler.Buy)
	p.POST("/sell", requireKey, portfolioHandler.Sell)
	p.PUT("/prices", requireKey, portfolioHandler.UpdatePrices)
	p.POST("/prices/refresh", requireKey, portfolioHandler.RefreshPrices)

	// Market routes
	coins := v1.Group("/coins")
	coins.GET("", coinHandler.ListCoins)
	coins.GET("/:id/history", coinHandler.GetHistory)

	// Favorite routes
	favorites := v1.Group("/favorites")
	favorites.GET("", favoritesHandler.ListFavorites)
	favorites.GET("/:id", favoritesHandler.GetFavorite)
	favorites.POST("", requireKey, favoritesHandler.AddFavorite)
	favorites.DELETE("/:id", requireKey, favoritesHandler.RemoveFavorite)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
