package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turtlemeow87-design/tradscendence-site/internal/api/handlers"
	"github.com/turtlemeow87-design/tradscendence-site/internal/api/middleware"
	"github.com/turtlemeow87-design/tradscendence-site/internal/config"
	database "github.com/turtlemeow87-design/tradscendence-site/internal/db"
	"github.com/turtlemeow87-design/tradscendence-site/internal/notify"
	"github.com/turtlemeow87-design/tradscendence-site/internal/storage"
)

type Server struct {
	cfg      *config.Config
	db       *database.Client
	storage  *storage.Client
	notifier notify.Notifier
	log      *zap.Logger
	router   *gin.Engine
}

// New wires the HTTP surface. db may be nil in the relay-only
// configuration, in which case the catalog endpoints are not mounted.
func New(cfg *config.Config, db *database.Client, st *storage.Client, notifier notify.Notifier, log *zap.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:      cfg,
		db:       db,
		storage:  st,
		notifier: notifier,
		log:      log,
		router:   gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.AdminKeyHeader}

	s.router.Use(cors.New(corsConfig))
	s.router.Use(middleware.NoStore())
}

func (s *Server) setupRoutes() {
	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "sound-beyond-borders"})
	})

	var store handlers.SubmissionStore
	if s.db != nil && s.cfg.Notify.Mode == config.NotifyResend {
		store = s.db
	}
	contactHandler := handlers.NewContactHandler(s.cfg.Notify.Mode, store, s.notifier, s.log)

	api := s.router.Group("/api")
	api.POST("/contact", contactHandler.Submit)

	admin := middleware.RequireAdminKey(s.cfg.Admin.APIKey)

	if s.db != nil {
		instrumentHandler := handlers.NewInstrumentHandler(s.db.DB, s.log)

		inst := api.Group("/instruments")
		{
			inst.GET("", instrumentHandler.List)
			inst.GET("/featured", instrumentHandler.Featured)
			inst.GET("/:slug", instrumentHandler.Get)

			inst.POST("", admin, instrumentHandler.Create)
			inst.PUT("/:slug", admin, instrumentHandler.Update)
			inst.DELETE("/:slug", admin, instrumentHandler.Delete)
		}
	}

	if s.storage != nil {
		assetHandler := handlers.NewAssetHandler(s.storage, s.log)
		api.POST("/assets", admin, assetHandler.Upload)
		api.GET("/assets", admin, assetHandler.List)
		api.DELETE("/assets/*key", admin, assetHandler.Delete)
	}
}

// Start runs the server on the configured port.
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
