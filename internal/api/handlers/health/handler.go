package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Check проверка зависимости (БД, Redis)
type Check func(ctx context.Context) error

type Logger interface {
	Warn(format string, v ...interface{})
}

// Response тело ответа /health
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks map[string]Check
	logger Logger
}

func NewHandler(checks map[string]Check, logger Logger) *Handler {
	return &Handler{checks: checks, logger: logger}
}

// Handle GET /health
// 503, если хотя бы одна проверка не прошла
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("GET /health - %s check failed: %v", name, err)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "up"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}
