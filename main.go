package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking_billing/internal/api"
	"parking_billing/internal/api/handler"
	"parking_billing/internal/api/middleware"
	"parking_billing/internal/config"
	"parking_billing/internal/repository"
	"parking_billing/internal/repository/memory"
	"parking_billing/internal/repository/postgresql"
	"parking_billing/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Set up the entity store
	var (
		ownerRepo      repository.OwnerRepository
		parkingRepo    repository.ParkingRepository
		allocationRepo repository.AllocationRepository
		valetRepo      repository.ValetRepository
		userRepo       repository.UserRepository
	)
	switch cfg.StoreDriver {
	case "postgres":
		db, err := postgresql.NewDB(cfg)
		if err != nil {
			log.Fatalf("Could not connect to database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL store.")

		ownerRepo = postgresql.NewPgOwnerRepository(db)
		parkingRepo = postgresql.NewPgParkingRepository(db)
		allocationRepo = postgresql.NewPgAllocationRepository(db)
		valetRepo = postgresql.NewPgValetRepository(db)
		userRepo = postgresql.NewPgUserRepository(db)
	case "memory":
		store := memory.NewStore()
		log.Println("Using in-memory store.")

		ownerRepo = store.Owners()
		parkingRepo = store.Parkings()
		allocationRepo = store.Allocations()
		valetRepo = store.Valets()
		userRepo = store.Users()
	default:
		log.Fatalf("Unknown STORE_DRIVER %q (want \"memory\" or \"postgres\")", cfg.StoreDriver)
	}

	// 3. Start the websocket occupancy feed
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start()
	log.Println("WebSocket manager started.")

	// 4. Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	parkingService := service.NewParkingService(ownerRepo, parkingRepo, allocationRepo, valetRepo, webSocketManager)

	// 5. Auth middleware and router
	authMiddleware := middleware.NewAuthMiddleware(authService)
	router := api.SetupRouter(authService, parkingService, authMiddleware, webSocketManager)

	// 6. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shut down: %v", err)
	}

	log.Println("Server stopped.")
}
