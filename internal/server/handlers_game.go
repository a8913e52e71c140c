package server

import (
	"net/http"
	"strings"

	"playlist-rater/internal/game"
	"playlist-rater/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if !bindJSON(c, &req, createGameMessages, "invalid game settings") {
		return
	}
	in := store.NewGame{
		Name: strings.TrimSpace(req.GameName),
		Settings: game.Settings{
			MinSongs:            game.MinSongsLimit,
			MaxSongs:            game.MaxSongsLimit,
			RequirePlaylistLink: *req.RequirePlaylistLink,
		},
	}
	if req.GameDescription != nil {
		in.Description = *req.GameDescription
	}
	if req.MinSongsPerPlaylist != nil {
		in.Settings.MinSongs = *req.MinSongsPerPlaylist
	}
	if req.MaxSongsPerPlaylist != nil {
		in.Settings.MaxSongs = *req.MaxSongsPerPlaylist
	}
	if err := in.Settings.Validate(); err != nil {
		s.writeStoreError(c, err)
		return
	}
	created, err := s.store.CreateGame(c.Request.Context(), in)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("game created",
		zap.Int("min_songs", in.Settings.MinSongs),
		zap.Int("max_songs", in.Settings.MaxSongs),
		zap.Bool("require_playlist_link", in.Settings.RequirePlaylistLink),
	)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleCheckCode(c *gin.Context) {
	var uri anyCodeURI
	if !bindURI(c, &uri) {
		return
	}
	valid, err := s.store.CheckCode(c.Request.Context(), uri.Code)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_valid": valid})
}

func (s *Server) handlePeek(c *gin.Context) {
	var uri anyCodeURI
	if !bindURI(c, &uri) {
		return
	}
	summary, err := s.store.Peek(c.Request.Context(), uri.Code)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleJoin(c *gin.Context) {
	var uri inviteURI
	if !bindURI(c, &uri) {
		return
	}
	var req playerInfoRequest
	if !bindJSON(c, &req, playerInfoMessages, "invalid player info") {
		return
	}
	info := req.info()
	playerCode, err := s.store.Join(c.Request.Context(), uri.InviteCode, info)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("player joined", zap.Int("songs", len(info.Songs)))
	c.JSON(http.StatusCreated, gin.H{"player_code": playerCode})
}
