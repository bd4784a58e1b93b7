package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hugh/planit/internal/accounts"
	"github.com/hugh/planit/internal/api/handlers"
	"github.com/hugh/planit/internal/api/middleware"
	"github.com/hugh/planit/internal/auth"
	"github.com/hugh/planit/internal/notify"
	"github.com/hugh/planit/internal/planner"
	"github.com/hugh/planit/internal/teams"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client // optional; enables the shared rate limiter
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    auth.Authenticator
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	accountService := accounts.NewService(cfg.DB, cfg.Logger)
	teamService := teams.NewService(cfg.DB, cfg.Logger)
	notifyService := notify.NewService(cfg.DB, cfg.Logger)
	plannerService := planner.NewService(cfg.DB, cfg.Logger)

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	userHandler := handlers.NewUserHandler(cfg.DB, accountService, cfg.AuthService)
	teamHandler := handlers.NewTeamHandler(cfg.DB, teamService)
	notificationHandler := handlers.NewNotificationHandler(cfg.DB, notifyService)
	plannerHandler := handlers.NewPlannerHandler(cfg.DB, plannerService)

	// Health and metrics sit outside the rate limit
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWTService))
		if cfg.RateLimitReqs > 0 {
			r.Use(middleware.RateLimit(newLimiter(cfg), cfg.Logger))
		}

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))
			r.Get("/me", authHandler.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/by-email/{email}", userHandler.GetByEmail)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Put("/{id}/password", userHandler.ChangePassword)
			r.Delete("/{id}", userHandler.Delete)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
			r.Get("/{id}", teamHandler.Get)
			r.Put("/{id}", teamHandler.Update)
			r.Delete("/{id}", teamHandler.Delete)
			r.Get("/{id}/meetings", teamHandler.ListMeetings)
			r.Post("/{id}/meetings", teamHandler.CreateMeeting)
		})

		r.Put("/meetings/{id}", teamHandler.UpdateMeeting)
		r.Delete("/meetings/{id}", teamHandler.DeleteMeeting)
		r.Put("/meeting-invitations/{id}/respond", teamHandler.Respond)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.List)
			r.Put("/mark-all-read", notificationHandler.MarkAllRead)
			r.Put("/{id}/read", notificationHandler.MarkRead)
			r.Delete("/{id}", notificationHandler.Delete)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", plannerHandler.ListActivities)
			r.Post("/", plannerHandler.CreateActivity)
			r.Put("/{id}", plannerHandler.UpdateActivity)
			r.Delete("/{id}", plannerHandler.DeleteActivity)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", plannerHandler.ListGoals)
			r.Post("/", plannerHandler.CreateGoal)
			r.Put("/{id}", plannerHandler.UpdateGoal)
			r.Delete("/{id}", plannerHandler.DeleteGoal)
		})

		r.Delete("/timelines/{id}", plannerHandler.DeleteTimeline)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	})

	return &Router{r}
}

// newLimiter shares counters through redis when a client is configured so
// that several API replicas enforce one budget.
func newLimiter(cfg RouterConfig) middleware.Limiter {
	if cfg.Redis != nil {
		return middleware.NewRedisLimiter(cfg.Redis, cfg.RateLimitReqs, cfg.RateLimitSecs)
	}
	return middleware.NewMemoryLimiter(cfg.RateLimitReqs, cfg.RateLimitSecs)
}
