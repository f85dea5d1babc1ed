package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"mangemate/config"
	"mangemate/database"
	"mangemate/handlers"
	"mangemate/middleware"
	"mangemate/routes"
	"mangemate/store"
	"mangemate/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	client, err := database.Connect(config.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := client.Database(config.DBName)

	userStore := store.NewMongoUserStore(db)
	assetStore := store.NewMongoAssetStore(db)
	requestStore := store.NewMongoRequestStore(db)

	hub := websocket.NewHub()

	userHandler := handlers.NewUserHandler(userStore)
	assetHandler := handlers.NewAssetHandler(assetStore)
	requestHandler := handlers.NewRequestHandler(requestStore, hub)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, userHandler, assetHandler, requestHandler, hub)

	// Global middlewares (order matters!)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CorsMiddleware)
	router.Use(middleware.MetricsMiddleware)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Mange Mate is running on port %s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect(client)
	log.Println("Server stopped gracefully")
}
