package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prima-photo-backend/internal/config"
	"prima-photo-backend/internal/handlers"
	"prima-photo-backend/internal/middleware"
	"prima-photo-backend/internal/models"
	"prima-photo-backend/internal/services"
	"prima-photo-backend/internal/session"
	"prima-photo-backend/internal/storage"
	"prima-photo-backend/internal/storage/filestore"
	"prima-photo-backend/internal/storage/s3store"
	"prima-photo-backend/internal/storage/sqlstore"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Open persistence store
	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()
	log.Info().Str("backend", cfg.Storage.Backend).Msg("Storage opened")

	// Optional S3 image offload
	var uploader services.ImageUploader
	if cfg.AWS.Enabled {
		s3Uploader, err := s3store.New(cfg.AWS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 uploader")
		}
		uploader = s3Uploader
		log.Info().Str("bucket", cfg.AWS.S3Bucket).Msg("S3 image offload enabled")
	}

	// Initialize session manager and services
	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessions := session.NewManager(cfg.Session.Secret, sessionTTL)
	authService := services.NewAuthService(store, sessions)
	photoService := services.NewPhotoService(store, uploader)
	contentService := services.NewContentService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessionTTL)
	photoHandler := handlers.NewPhotoHandler(photoService)
	contentHandler := handlers.NewContentHandler(contentService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(middleware.WithSession(sessions))

	// Public routes
	r.Get("/api/health", handlers.Health)
	r.Get("/api/photos", photoHandler.ListPhotos)
	r.Get("/api/content/{section}", contentHandler.GetSection)
	r.Get("/api/session", authHandler.Session)

	// Admin routes
	r.Post("/admin/login", authHandler.Login)
	r.Post("/admin/logout", authHandler.Logout)
	r.Get("/admin/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/admin/photos", photoHandler.AddPhoto)
		r.Delete("/admin/photos/{id}", photoHandler.DeletePhoto)
		r.Post("/admin/content/{section}", contentHandler.SaveSection)
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openStore builds the persistence store selected by configuration. The
// configured admin password is hashed here so no plaintext is kept around.
func openStore(cfg *config.Config) (storage.Store, error) {
	hash, err := services.HashPassword(cfg.Admin.Password)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{Username: cfg.Admin.Username, PasswordHash: hash}

	switch cfg.Storage.Backend {
	case "sqlite":
		return sqlstore.OpenSQLite(cfg.Storage.DataDir, admin)
	case "postgres":
		return sqlstore.OpenPostgres(cfg.Database.DSN(), admin)
	case "file":
		return filestore.New(cfg.Storage.DataDir, admin)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
