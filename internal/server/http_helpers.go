package server

import (
	"errors"
	"net/http"

	"playlist-rater/internal/game"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal Server Error"

// writeMessage answers a successful mutation that has nothing else to return.
func writeMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"message": message,
	})
}

// writeStoreError maps a store error onto a status code. Only rule errors
// carry a message the caller may see.
func (s *Server) writeStoreError(c *gin.Context, err error) {
	message, ok := game.Message(err)
	if !ok {
		s.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", routeOf(c)),
			zap.Error(err),
		)
		writeError(c, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	switch {
	case errors.Is(err, game.ErrInvalid):
		writeError(c, http.StatusBadRequest, message)
	case errors.Is(err, game.ErrNotFound):
		writeError(c, http.StatusNotFound, message)
	case errors.Is(err, game.ErrGone):
		writeError(c, http.StatusGone, message)
	case errors.Is(err, game.ErrConflict):
		writeError(c, http.StatusConflict, message)
	default:
		writeError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}
