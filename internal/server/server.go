package server

import (
	"net/http"

	"playlist-rater/internal/config"
	"playlist-rater/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	store   *store.Store
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics
}

func New(st *store.Store, cfg config.Config, logger *zap.Logger) *Server {
	registerValidators()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:   st,
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
	}
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(
		requestLogger(s.logger),
		recovery(s.logger),
		corsMiddleware(s.cfg.CORSAllowOrigins),
	)
	if s.cfg.MetricsEnabled {
		router.Use(s.metrics.middleware())
		router.GET("/metrics", gin.WrapH(s.metrics.handler()))
	}
	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Resource not found")
	})

	router.GET("/", s.handleHealth)

	games := router.Group("/game")
	games.POST("/new", s.handleCreateGame)
	games.GET("/check_code/:code", s.handleCheckCode)
	games.GET("/peek/:code", s.handlePeek)
	games.POST("/join/:invite_code", s.handleJoin)

	admin := router.Group("/admin")
	admin.GET("/review/:admin_code", s.handleAdminReview)
	admin.GET("/events/:admin_code", s.handleAdminEvents)
	admin.POST("/begin/:admin_code", s.handleBegin)
	admin.POST("/end/:admin_code", s.handleEnd)
	admin.POST("/remove_player/:admin_code", s.handleRemovePlayer)

	player := router.Group("/player")
	player.GET("/review/:player_code", s.handlePlayerReview)
	player.POST("/add_song/:player_code", s.handleAddSong)
	player.POST("/remove_song/:player_code", s.handleRemoveSong)
	player.POST("/replace_song/:player_code", s.handleReplaceSong)
	player.POST("/change_playlist_link/:player_code", s.handleChangePlaylistLink)
	player.POST("/update_info/:player_code", s.handleUpdateInfo)
	player.POST("/rate_song/:player_code", s.handleRateSong)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.logger.Error("database ping failed", zap.Error(err))
		writeError(c, http.StatusServiceUnavailable, "The database is unavailable")
		return
	}
	writeMessage(c, http.StatusOK, "The server is up and running")
}
