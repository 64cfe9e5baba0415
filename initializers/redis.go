package initializers

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectToRedis opens the session store client and verifies it is
// reachable before the server starts taking requests.
func ConnectToRedis(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Failed to connect to redis at %s: %v", addr, err)
	}
	log.Println("✅ Redis connected successfully")
	return client
}
