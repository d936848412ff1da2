package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/focusflow/backend/internal/auth"
	"github.com/focusflow/backend/internal/config"
	"github.com/focusflow/backend/internal/middleware"
	"github.com/focusflow/backend/internal/migrate"
	"github.com/focusflow/backend/internal/notify"
	"github.com/focusflow/backend/internal/session"
	"github.com/focusflow/backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		logger.Fatal("missing JWT_ACCESS_SECRET / JWT_REFRESH_SECRET")
	}

	// ── PostgreSQL ────────────────────────────────────────────
	if err := migrate.Up(ctx, cfg.PostgresDSN); err != nil {
		logger.Fatal("postgres migrate", zap.Error(err))
	}
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer pgPool.Close()
	users := store.NewPostgresStore(pgPool)

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	sessions := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()
	refreshSessions := auth.NewSessionStore(rdb)
	counter := middleware.NewRedisCounter(rdb)

	// ── Services & handlers ──────────────────────────────────
	tokens := auth.NewTokenManager(
		[]byte(cfg.AccessSecret), []byte(cfg.RefreshSecret),
		cfg.AccessTTL, cfg.RefreshTTL,
	)
	authHandler := auth.NewHandler(auth.NewService(users), tokens, refreshSessions, logger)

	cliq := notify.NewCliqClient(cfg.CliqAPIBase, nil)
	notifyHandler := notify.NewHandler(notify.NewService(cliq, nil), logger)

	sessionHandler := session.NewHandler(sessions)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check, exempt from rate limiting
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(counter, "general", cfg.RateLimitMax, cfg.RateLimitWindow, "ERR_RATE_LIMIT"))

		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(counter, "auth", cfg.AuthRateLimitMax, cfg.RateLimitWindow, "ERR_AUTH_RATE_LIMIT"))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/refresh", authHandler.Refresh)
				r.Post("/forgot-password", authHandler.ForgotPassword)
				r.Post("/reset-password", authHandler.ResetPassword)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(tokens))
				r.Get("/profile", authHandler.Profile)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Patch("/profile", authHandler.UpdateProfile)
				r.Get("/me", authHandler.Profile)
				r.Put("/me", authHandler.UpdateProfile)
				r.Patch("/me", authHandler.UpdateProfile)
				r.Post("/change-password", authHandler.ChangePassword)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Notification relay (auth optional)
		r.Route("/notify", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(tokens))
			r.Post("/cliq", notifyHandler.SendCliq)
		})

		// Focus sessions & analytics (protected)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Post("/sessions", sessionHandler.Start)
			r.Get("/sessions", sessionHandler.List)
			r.Put("/sessions/{id}/complete", sessionHandler.Complete)
			r.Get("/analytics/summary", sessionHandler.Summary)
		})
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
