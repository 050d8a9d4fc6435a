package api

import (
	"net/http"

	authDelivery "jobtrail-backend/internal/auth/delivery"
	authUsecase "jobtrail-backend/internal/auth/usecase"
	ingestDelivery "jobtrail-backend/internal/ingest/delivery"
	trackerDelivery "jobtrail-backend/internal/tracker/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, authHandler *authDelivery.AuthHandler, trackerHandler *trackerDelivery.TrackerHandler, ingestHandler *ingestDelivery.IngestHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
			auth.POST("/imap", authDelivery.AuthMiddleware(authUc), authHandler.LinkImap)
		}

		// Gmail OAuth link flow
		oauth := api.Group("/oauth/google")
		{
			oauth.GET("/start", authDelivery.AuthMiddleware(authUc), authHandler.GoogleStart)
			oauth.GET("/callback", authHandler.GoogleCallback)
			oauth.DELETE("", authDelivery.AuthMiddleware(authUc), authHandler.UnlinkGmail)
		}

		// Application tracker routes (protected)
		applications := api.Group("/applications")
		applications.Use(authDelivery.AuthMiddleware(authUc))
		{
			applications.GET("", trackerHandler.ListApplications)
			applications.POST("", trackerHandler.CreateApplication)
			applications.GET("/:id", trackerHandler.GetApplication)
			applications.GET("/:id/emails", trackerHandler.ListApplicationEmails)
			applications.PATCH("/:id", trackerHandler.UpdateApplication)
			applications.DELETE("/:id", trackerHandler.DeleteApplication)
		}

		// Inbox ingestion routes (protected)
		gmailGroup := api.Group("/gmail")
		gmailGroup.Use(authDelivery.AuthMiddleware(authUc))
		{
			gmailGroup.POST("/ingest", ingestHandler.Ingest)
			gmailGroup.POST("/diagnose", ingestHandler.Diagnose)
		}
	}
}
