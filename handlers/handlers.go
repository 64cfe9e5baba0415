// Package handlers exposes the HTTP surface over the guard and the
// file manager. Handlers stay thin: parse the request, call the
// component, map the error taxonomy onto status codes.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/auth"
	"github.com/basit/filestash-backend/auth/middleware"
	"github.com/basit/filestash-backend/files"
	"github.com/basit/filestash-backend/storage"
)

type Handler struct {
	guard    *auth.Guard
	files    *files.Manager
	meta     *storage.Metadata
	sessions storage.SessionStore
}

func New(guard *auth.Guard, manager *files.Manager, meta *storage.Metadata, sessions storage.SessionStore) *Handler {
	return &Handler{guard: guard, files: manager, meta: meta, sessions: sessions}
}

// respondError maps a component error onto the stable code/message
// pairs of the API. Unknown errors are logged and become a generic 500.
func respondError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already exist"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requestUserID returns the authenticated user id set by AuthRequired.
func requestUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.UserIDKey).(uuid.UUID)
}

// optionalUserID returns the user id when AuthOptional resolved one.
func optionalUserID(c *gin.Context) *uuid.UUID {
	if v, ok := c.Get(middleware.UserIDKey); ok {
		id := v.(uuid.UUID)
		return &id
	}
	return nil
}
