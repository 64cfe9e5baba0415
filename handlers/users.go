package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basit/filestash-backend/apperrors"
)

// PostUser registers a new user.
func (h *Handler) PostUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// A missing or malformed body falls through to the field checks.
	_ = c.ShouldBindJSON(&body)

	user, err := h.guard.Register(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.View())
}

// GetMe returns the authenticated user's id and email. A token whose
// user record has vanished is treated as unauthorized.
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.meta.FindUserByID(c.Request.Context(), requestUserID(c))
	if err != nil {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user.View())
}
