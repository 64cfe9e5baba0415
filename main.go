package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/basit/filestash-backend/auth"
	"github.com/basit/filestash-backend/files"
	"github.com/basit/filestash-backend/handlers"
	"github.com/basit/filestash-backend/initializers"
	"github.com/basit/filestash-backend/jobs"
	"github.com/basit/filestash-backend/routes"
	"github.com/basit/filestash-backend/storage"
)

func main() {
	cfg := initializers.LoadConfig()

	db := initializers.ConnectToDatabase(cfg.DatabaseURL)
	redisClient := initializers.ConnectToRedis(cfg.RedisAddr)

	sessions := storage.NewRedisSessionStore(redisClient)
	meta := storage.NewMetadata(db)
	blobs := storage.NewBlobStore(cfg.FolderPath)

	queue := jobs.NewQueue(cfg.QueueSize)
	thumbnailer := jobs.NewThumbnailer(meta, blobs)
	queue.Run(context.Background(), cfg.Workers, thumbnailer.Process)

	guard := auth.NewGuard(sessions, meta)
	manager := files.NewManager(meta, blobs, queue)
	handler := handlers.New(guard, manager, meta, sessions)

	router := gin.Default()
	// Add CORS middleware before other middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(router, handler, guard)

	log.Printf("listening on http://localhost:%s/", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
