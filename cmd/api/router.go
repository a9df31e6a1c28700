package main

import (
	"database/sql"
	"net/http"

	"github.com/ado1d/profile-taks-manager/internal/config"
	"github.com/ado1d/profile-taks-manager/internal/handlers"
	mw "github.com/ado1d/profile-taks-manager/internal/middleware"
	"github.com/ado1d/profile-taks-manager/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"time"
)

// newRouter builds the full API router with middleware chain and all routes.
// Kept separate from main so integration tests can mount it on httptest.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	taskRepo := repo.NewTaskRepo(db)

	authHandler := &handlers.AuthHandler{
		UserRepo: userRepo,
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	taskHandler := &handlers.TaskHandler{Repo: taskRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.Recoverer)
	r.Use(mw.RequestLog)
	r.Use(mw.Prometheus)
	r.Use(mw.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))
	r.Use(mw.MaxBytes(mw.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.JSON(w, map[string]interface{}{"ok": true, "service": "profile-task-manager"}, http.StatusOK)
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		handlers.JSON(w, map[string]bool{"ready": true}, http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := mw.AuthRateLimiter()
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(mw.JWTMiddleware([]byte(cfg.JWTSecret)))
		r.Post("/", taskHandler.CreateTask)
		r.Get("/", taskHandler.ListTasks)
		r.With(mw.RequireAdmin).Get("/admin/all", taskHandler.AdminListAll)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	return r
}
