package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConnect logs a user in from a Basic authorization header and
// returns a fresh token.
func (h *Handler) GetConnect(c *gin.Context) {
	token, err := h.guard.Login(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetDisconnect destroys the session behind X-Token.
func (h *Handler) GetDisconnect(c *gin.Context) {
	if err := h.guard.Logout(c.Request.Context(), c.GetHeader("X-Token")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
