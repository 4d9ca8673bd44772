package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tkesgar/javelin/internal/api"
	"github.com/tkesgar/javelin/internal/api/routes"
	"github.com/tkesgar/javelin/internal/config"
	"github.com/tkesgar/javelin/internal/handlers"
	"github.com/tkesgar/javelin/internal/realtime"
	"github.com/tkesgar/javelin/internal/repo"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.CloseDB(db)

	// Run migrations
	if err := config.MigrateAllModels(db, cfg.DBMigrateOnBoot); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Start the realtime hub
	snapshots := handlers.NewSnapshotService(
		repo.NewBoardRepository(db),
		repo.NewCardRepository(db),
		repo.NewUserRepository(db),
	)
	hub := realtime.NewHub(snapshots)
	go hub.Run()

	// Create and configure Fiber app
	app := api.NewServer(cfg)

	// Register routes
	routes.Register(app, db, hub)

	// Shut down cleanly on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Println("shutdown error:", err)
		}
	}()

	// Start server
	if err := api.StartServer(app, cfg); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
