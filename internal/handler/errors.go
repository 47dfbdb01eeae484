package handler

import (
	"errors"
	"net/http"

	"leo-chat/internal/transport/httpdto"
	chat_errors "leo-chat/pkg/errors"
	"leo-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// writeError maps service errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat_errors.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, chat_errors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
	case errors.Is(err, chat_errors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func badRequest(c *gin.Context, msg string) {
	respondError(c, http.StatusBadRequest, msg, "INVALID_REQUEST")
}

func respondError(c *gin.Context, status int, msg, code string) {
	requestID, _ := c.Request.Context().Value(logger.RequestIdKey).(string)
	c.JSON(status, httpdto.NewErrorResponse(msg, code).WithRequestID(requestID))
}

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}
