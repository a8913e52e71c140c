package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) handlePlayerReview(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	view, err := s.store.PlayerView(c.Request.Context(), uri.PlayerCode)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleAddSong(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	var req addSongRequest
	if !bindJSON(c, &req, songMessages, "invalid song") {
		return
	}
	songID, err := s.store.AddSong(c.Request.Context(), uri.PlayerCode, req.SongToAdd.input())
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"song_id": songID})
}

func (s *Server) handleRemoveSong(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	var req removeSongRequest
	if !bindJSON(c, &req, songMessages, "invalid song") {
		return
	}
	if err := s.store.RemoveSong(c.Request.Context(), uri.PlayerCode, uint(req.SongIDToRemove)); err != nil {
		s.writeStoreError(c, err)
		return
	}
	writeMessage(c, http.StatusCreated, "The song has been removed")
}

func (s *Server) handleReplaceSong(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	var req replaceSongRequest
	if !bindJSON(c, &req, songMessages, "invalid song") {
		return
	}
	songID, err := s.store.ReplaceSong(c.Request.Context(), uri.PlayerCode, uint(req.SongIDToRemove), req.SongToAdd.input())
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("song replaced",
		zap.Int64("old_song_id", req.SongIDToRemove),
		zap.Uint("song_id", songID),
	)
	c.JSON(http.StatusCreated, gin.H{"song_id": songID})
}

func (s *Server) handleChangePlaylistLink(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	var req changePlaylistLinkRequest
	if !bindJSON(c, &req, songMessages, "invalid playlist link") {
		return
	}
	if err := s.store.ChangePlaylistLink(c.Request.Context(), uri.PlayerCode, req.PlaylistLink); err != nil {
		s.writeStoreError(c, err)
		return
	}
	writeMessage(c, http.StatusCreated, "The playlist link has been changed")
}

func (s *Server) handleUpdateInfo(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	var req playerInfoRequest
	if !bindJSON(c, &req, playerInfoMessages, "invalid player info") {
		return
	}
	playerCode, err := s.store.UpdateInfo(c.Request.Context(), uri.PlayerCode, req.info())
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("player info updated", zap.Int("songs", len(req.Songs)))
	c.JSON(http.StatusCreated, gin.H{"player_code": playerCode})
}

func (s *Server) handleRateSong(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	var req rateSongRequest
	if !bindJSON(c, &req, rateSongMessages, "invalid rating") {
		return
	}
	if err := s.store.RateSong(c.Request.Context(), uri.PlayerCode, uint(req.SongID), *req.Rating); err != nil {
		s.writeStoreError(c, err)
		return
	}
	writeMessage(c, http.StatusCreated, "The rating has been saved")
}
