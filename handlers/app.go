package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus reports liveness of the session store and the metadata
// store.
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"redis": h.sessions.Ping(ctx) == nil,
		"db":    h.meta.Ping(ctx) == nil,
	})
}

// GetStats reports how many users and files exist.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.meta.CountUsers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	files, err := h.meta.CountFiles(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "files": files})
}
