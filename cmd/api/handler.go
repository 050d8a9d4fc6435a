package api

import (
	authDelivery "jobtrail-backend/internal/auth/delivery"
	authUsecase "jobtrail-backend/internal/auth/usecase"
	ingestDelivery "jobtrail-backend/internal/ingest/delivery"
	ingestUsecase "jobtrail-backend/internal/ingest/usecase"
	trackerDelivery "jobtrail-backend/internal/tracker/delivery"
	trackerUsecase "jobtrail-backend/internal/tracker/usecase"
	"jobtrail-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	authHandler    *authDelivery.AuthHandler
	trackerHandler *trackerDelivery.TrackerHandler
	ingestHandler  *ingestDelivery.IngestHandler
	config         *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, trackerUc trackerUsecase.TrackerUsecase, ingestUc ingestUsecase.IngestUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		authHandler:    authDelivery.NewAuthHandler(authUc),
		trackerHandler: trackerDelivery.NewTrackerHandler(trackerUc),
		ingestHandler:  ingestDelivery.NewIngestHandler(ingestUc),
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.authHandler, h.trackerHandler, h.ingestHandler)

	return r.Run(addr)
}
