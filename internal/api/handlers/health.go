package handlers

import (
	"net/http"

	"github.com/hugh/planit/internal/api/dto"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler takes an optional redis client; nil means the API runs
// with the in-memory rate limiter and redis is not reported.
func NewHealthHandler(db *gorm.DB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

type HealthResponse struct {
	dto.Response
	Services map[string]string `json:"services"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{"database": "healthy"}
	healthy := true

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(r.Context()) != nil {
		services["database"] = "unhealthy"
		healthy = false
	}

	if h.redis != nil {
		services["redis"] = "healthy"
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			services["redis"] = "unhealthy"
			healthy = false
		}
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Response: dto.Fail("Service unhealthy", "dependency check failed"),
			Services: services,
		})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Response: dto.OK("Service healthy"), Services: services})
}

// Ready reports whether the process accepts traffic. It does not touch
// dependencies.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.OK("ready"))
}
