package initializers

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis backs the logout token denylist. It is optional: when REDIS_URL is
// not set the denylist is disabled and tokens stay valid until they expire.
var Redis *redis.Client

func ConnectToRedis() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, logout denylist disabled.")
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatal("Failed to parse REDIS_URL: ", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis ping failed: ", err)
	}
	Redis = client
	log.Println("Connected to Redis.")
}
