package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/basit/filestash-backend/auth"
	"github.com/basit/filestash-backend/auth/middleware"
	"github.com/basit/filestash-backend/handlers"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, guard *auth.Guard) {
	r.GET("/status", h.GetStatus)
	r.GET("/stats", h.GetStats)

	r.GET("/connect", h.GetConnect)
	r.GET("/disconnect", h.GetDisconnect)

	r.POST("/users", h.PostUser)
	r.GET("/users/me", middleware.AuthRequired(guard), h.GetMe)

	fileGroup := r.Group("/files")
	fileGroup.GET("/:id/data", middleware.AuthOptional(guard), h.GetFileData) // public data access
	fileGroup.Use(middleware.AuthRequired(guard))                             // protect the rest

	fileGroup.POST("", h.PostUpload)
	fileGroup.GET("", h.GetIndex)
	fileGroup.GET("/:id", h.GetShow)
	fileGroup.PUT("/:id/publish", h.PutPublish)
	fileGroup.PUT("/:id/unpublish", h.PutUnpublish)
}
