package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type bindMessages map[string]map[string]string

func bindJSON(c *gin.Context, req any, messages bindMessages, fallback string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, resolveBindError(err, messages, fallback))
		return false
	}
	return true
}

// bindURI rejects a malformed code before any lookup happens.
func bindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		writeError(c, http.StatusBadRequest, resolveBindError(err, uriMessages, "invalid code"))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any, messages bindMessages) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeError(c, http.StatusBadRequest, resolveBindError(err, messages, "invalid query"))
		return false
	}
	return true
}

func resolveBindError(err error, messages bindMessages, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
				if msg, ok := fieldMsgs["*"]; ok {
					return msg
				}
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "invalid request"
}

var uriMessages = bindMessages{
	"AdminCode":  {"*": "invalid admin code"},
	"PlayerCode": {"*": "invalid player code"},
	"InviteCode": {"*": "invalid invite code"},
	"Code":       {"*": "invalid code"},
}
