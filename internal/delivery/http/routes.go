package http

import (
	"github.com/gin-gonic/gin"

	"github.com/creditwise/backend/config"
	"github.com/creditwise/backend/internal/auth"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, tokens *auth.TokenService) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		chat := v1.Group("/chat")
		{
			chat.POST("/sessions", handler.CreateSession)
			chat.GET("/sessions/:id", handler.GetSession)
			chat.DELETE("/sessions/:id", handler.EndSession)
			chat.POST("/sessions/:id/messages", handler.PostMessage)
		}

		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("/questionnaire", handler.QuestionnaireRecommendations)
		}

		cards := v1.Group("/cards")
		{
			cards.GET("", handler.ListCards)
			cards.GET("/stats", handler.CardStats)
			cards.GET("/search", handler.SearchCards)
			cards.GET("/:id", handler.GetCard)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/login", handler.AdminLogin)

			protected := admin.Group("/cards", RequireAuth(tokens))
			{
				protected.POST("", handler.CreateCard)
				protected.PUT("/:id", handler.UpdateCard)
				protected.DELETE("/:id", handler.DeleteCard)
				protected.DELETE("", handler.DeleteAllCards)
			}
		}
	}

	return router
}
