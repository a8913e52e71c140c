package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAdminReview(c *gin.Context) {
	var uri adminURI
	if !bindURI(c, &uri) {
		return
	}
	view, err := s.store.AdminView(c.Request.Context(), uri.AdminCode)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleAdminEvents(c *gin.Context) {
	var uri adminURI
	if !bindURI(c, &uri) {
		return
	}
	var query eventsQuery
	if !bindQuery(c, &query, eventsQueryMessages) {
		return
	}
	page, perPage := normalizePagination(query.Page, query.PerPage, defaultEventsPerPage, maxEventsPerPage)
	events, total, err := s.store.Events(c.Request.Context(), uri.AdminCode, page, perPage)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events":     events,
		"pagination": buildPaginationData(page, perPage, total),
	})
}

func (s *Server) handleBegin(c *gin.Context) {
	var uri adminURI
	if !bindURI(c, &uri) {
		return
	}
	if err := s.store.Begin(c.Request.Context(), uri.AdminCode); err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("game begun")
	writeMessage(c, http.StatusCreated, "The game has begun")
}

func (s *Server) handleEnd(c *gin.Context) {
	var uri adminURI
	if !bindURI(c, &uri) {
		return
	}
	if err := s.store.End(c.Request.Context(), uri.AdminCode); err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("game ended")
	writeMessage(c, http.StatusCreated, "The game has ended")
}

func (s *Server) handleRemovePlayer(c *gin.Context) {
	var uri adminURI
	if !bindURI(c, &uri) {
		return
	}
	var req removePlayerRequest
	if !bindJSON(c, &req, bindMessages{"PlayerCode": {"*": "invalid player code"}}, "invalid player code") {
		return
	}
	if err := s.store.RemovePlayer(c.Request.Context(), uri.AdminCode, req.PlayerCode); err != nil {
		s.writeStoreError(c, err)
		return
	}
	s.logger.Info("player removed")
	writeMessage(c, http.StatusCreated, "The player has been removed")
}
