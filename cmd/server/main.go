package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"contactledger/api"
	"contactledger/ledger"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env")

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	var opts []ledger.Option
	if ttl, ok := envSeconds("CACHE_TTL_SECONDS"); ok {
		// An explicit 0 means reload from disk on every read.
		opts = append(opts, ledger.WithCacheTTL(ttl))
	}

	store, err := ledger.Open(dataDir, opts...)
	if err != nil {
		log.Fatalf("Error opening contact ledger in %s: %v", dataDir, err)
	}
	log.Printf("Contact ledger ready at %s", store.Path())

	// Optional periodic reload, for hosts that suspend idle processes.
	if mins, ok := envInt("REFRESH_INTERVAL_MINUTES"); ok && mins > 0 {
		go store.RunRefresher(context.Background(), time.Duration(mins)*time.Minute)
	}

	r := gin.Default()

	// CORS setup for the frontend
	origins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	if len(origins) == 1 && origins[0] == "" {
		origins = []string{"*"}
	}
	r.Use(api.CORSMiddleware(origins))

	api.SetupRoutes(r, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8765"
	}

	log.Printf("Starting contact ledger backend on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

// envInt reads an integer environment variable, reporting whether it was
// set so callers can tell an explicit 0 apart from unset.
func envInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", name, v, err)
		return 0, false
	}
	return n, true
}

func envSeconds(name string) (time.Duration, bool) {
	n, ok := envInt(name)
	return time.Duration(n) * time.Second, ok
}
