package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quicknotes-server/internal/cache"
	"quicknotes-server/internal/config"
	"quicknotes-server/internal/events"
	"quicknotes-server/internal/handler"
	"quicknotes-server/internal/middleware"
	"quicknotes-server/internal/repository"
	"quicknotes-server/internal/service"

	_ "github.com/go-kivik/kivik/v4/couchdb"

	"github.com/go-kivik/kivik/v4"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	couchURL := fmt.Sprintf("http://%s:%s@%s:%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
	)

	client, err := kivik.New("couch", couchURL)
	if err != nil {
		log.Fatalf("Failed to connect to CouchDB: %v", err)
	}

	exists, err := client.DBExists(context.Background(), cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if err := client.CreateDB(context.Background(), cfg.Database.Name); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		log.Printf("Created database: %s", cfg.Database.Name)
	}

	redisAddr := fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
	noteCache := cache.NewRedisCache(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
	if err := noteCache.Ping(); err != nil {
		// Cache failures are soft everywhere; start without it and let
		// reads fall through to the record store until Redis recovers.
		log.Printf("Redis unreachable at %s: %v", redisAddr, err)
	}

	userRepo := repository.NewUserRepository(client, cfg.Database.Name)
	noteRepo := repository.NewNoteRepository(client, cfg.Database.Name)

	hub := events.NewHub(
		cfg.WebSocket.MaxConnPerUser,
		cfg.WebSocket.WriteWait,
		cfg.WebSocket.PongWait,
		cfg.WebSocket.PingPeriod,
	)
	go hub.Run()

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	noteService := service.NewNoteService(noteRepo, noteCache, cfg.Cache.NotesTTL, hub)

	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	eventsHandler := handler.NewEventsHandler(hub, cfg.JWT.Secret)

	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	r.HandleFunc("/health", healthHandler).Methods("GET")

	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Authenticated inside the handler; tokens may arrive as a query param.
	r.HandleFunc("/events/ws", eventsHandler.HandleConnection)

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.HandleFunc("/auth/profile", authHandler.Profile).Methods("GET", "OPTIONS")

	protected.HandleFunc("/notes", noteHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/notes", noteHandler.List).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Get).Methods("GET", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PATCH", "OPTIONS")
	protected.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE", "OPTIONS")

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting QuickNotes Server on %s (env: %s)", addr, cfg.Server.Env)
		log.Printf("Connected to CouchDB at %s:%s", cfg.Database.Host, cfg.Database.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := noteCache.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
