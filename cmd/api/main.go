package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/config"
	"github.com/Young-Flame/PhotoYo/internal/domain/admin"
	"github.com/Young-Flame/PhotoYo/internal/domain/auth"
	"github.com/Young-Flame/PhotoYo/internal/domain/booking"
	"github.com/Young-Flame/PhotoYo/internal/domain/contact"
	"github.com/Young-Flame/PhotoYo/internal/domain/dashboard"
	"github.com/Young-Flame/PhotoYo/internal/domain/notification"
	"github.com/Young-Flame/PhotoYo/internal/domain/photo"
	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/database"
	"github.com/Young-Flame/PhotoYo/internal/pkg/imaging"
	"github.com/Young-Flame/PhotoYo/internal/pkg/logger"
	"github.com/Young-Flame/PhotoYo/internal/pkg/password"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
	"github.com/Young-Flame/PhotoYo/internal/pkg/storage"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting PhotoYo API")

	// Database
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Redis holds the session store
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient == nil {
		log.Fatal().Msg("Redis is required for sessions, set REDIS_URL")
	}
	defer database.CloseRedis(redisClient)

	// File storage
	store := newStorage(cfg)

	// Repositories
	userRepo := user.NewRepository(db)
	sessionRepo := auth.NewSessionRepository(redisClient, cfg.SessionTTL)
	photoRepo := photo.NewRepository(db)
	commentRepo := photo.NewCommentRepository(db)
	bookingRepo := booking.NewRepository(db)
	contactRepo := contact.NewRepository(db)

	bootstrapAdmin(cfg, userRepo)

	// Event hub for admin notifications, shared across instances via
	// Redis pub/sub
	hub := notification.NewHub(redisClient)
	go hub.Run()
	defer hub.Close()
	broadcaster := notification.NewBroadcaster(hub)

	// Services
	authService := auth.NewService(userRepo, sessionRepo, cfg.PasswordMinLength)
	processor := imaging.NewProcessor(imaging.DefaultConfig())
	photoService := photo.NewService(photoRepo, commentRepo, store, processor, cfg.MaxUploadBytes())
	bookingService := booking.NewService(bookingRepo, broadcaster)
	adminService := admin.NewService(userRepo, store)
	dashboardService := dashboard.NewService(userRepo, photoRepo, commentRepo, bookingRepo, contactRepo)

	// Handlers
	authHandler := auth.NewHandler(authService)
	photoHandler := photo.NewHandler(photoService, cfg.MaxUploadBytes())
	bookingHandler := booking.NewHandler(bookingService)
	contactHandler := contact.NewHandler(contactRepo, broadcaster)
	adminHandler := admin.NewHandler(adminService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	notificationHandler := notification.NewHandler(hub, authService)

	// Middleware
	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	requireAdmin := middleware.RequireAdmin()

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	// Locally stored uploads are served by the API itself
	if _, ok := store.(*storage.LocalStorage); ok {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		authHandler.Routes(r, requireAuth)
		photoHandler.Routes(r, requireAuth)
		bookingHandler.Routes(r, optionalAuth, requireAuth, requireAdmin)
		contactHandler.Routes(r, requireAuth, requireAdmin)
		adminHandler.Routes(r, requireAuth, requireAdmin)
		dashboardHandler.Routes(r, requireAuth)

		// The websocket handler does its own auth so browsers can pass
		// the token as a query parameter.
		r.Get("/admin/events", notificationHandler.Events)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-done
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

func newStorage(cfg *config.Config) storage.Storage {
	if cfg.StorageBackend == "s3" {
		store, err := storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Using S3 storage")
		return store
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir, cfg.PublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize local storage")
	}
	log.Info().Str("dir", cfg.UploadDir).Msg("Using local storage")
	return store
}

// bootstrapAdmin creates the initial admin account when it does not exist
// yet, so a fresh deployment is manageable out of the box.
func bootstrapAdmin(cfg *config.Config, users user.Repository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up admin account")
	}
	if existing != nil {
		return
	}

	hash, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash admin password")
	}

	u := &user.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         policy.RoleAdmin,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin account")
	}

	log.Info().Str("email", cfg.AdminEmail).Msg("Bootstrap admin account created")
}
