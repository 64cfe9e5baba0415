package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/basit/filestash-backend/files"
	"github.com/basit/filestash-backend/models"
)

// PostUpload creates a folder, file or image entry.
func (h *Handler) PostUpload(c *gin.Context) {
	var params files.CreateParams
	// A malformed body leaves params zeroed and fails field validation.
	_ = c.ShouldBindJSON(&params)

	view, err := h.files.Create(c.Request.Context(), requestUserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetShow returns one of the caller's entries.
func (h *Handler) GetShow(c *gin.Context) {
	view, err := h.files.Get(c.Request.Context(), requestUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetIndex lists one page of the caller's entries under a parent.
func (h *Handler) GetIndex(c *gin.Context) {
	parent := c.DefaultQuery("parentId", models.RootParent)
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	views, err := h.files.List(c.Request.Context(), requestUserID(c), parent, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// PutPublish makes an entry public.
func (h *Handler) PutPublish(c *gin.Context) {
	h.setVisibility(c, true)
}

// PutUnpublish makes an entry private again.
func (h *Handler) PutUnpublish(c *gin.Context) {
	h.setVisibility(c, false)
}

func (h *Handler) setVisibility(c *gin.Context, public bool) {
	view, err := h.files.SetVisibility(c.Request.Context(), requestUserID(c), c.Param("id"), public)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetFileData serves the raw content of an entry. No token is required
// for public files; private ones need an owning token.
func (h *Handler) GetFileData(c *gin.Context) {
	data, mimeType, err := h.files.ReadData(c.Request.Context(), optionalUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, mimeType, data)
}
