package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/vibegram/api-go/config"
	"github.com/vibegram/api-go/migrations"
	"github.com/vibegram/api-go/repository"
	"github.com/vibegram/api-go/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	db := config.InitDB(cfg)

	if err := migrations.Run(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	if cfg.CleanupInterval > 0 {
		go startStorySweeper(db, cfg.CleanupInterval)
	}

	r := gin.Default()
	r.Use(gin.LoggerWithWriter(os.Stdout))

	routes.SetupRoutes(r, db, cfg)

	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server stopped: ", err)
	}
}

// startStorySweeper runs the expired-story sweep on a fixed interval.
// It is the same idempotent operation the cleanup endpoint exposes, so
// an external scheduler and the ticker can coexist.
func startStorySweeper(db *gorm.DB, interval time.Duration) {
	stories := repository.NewStoryRepository(db)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		removed, err := stories.CleanupExpired(time.Now().UnixMilli())
		if err != nil {
			log.Printf("Story cleanup failed: %v", err)
			continue
		}
		if removed > 0 {
			log.Printf("Story cleanup removed %d expired stories", removed)
		}
	}
}
