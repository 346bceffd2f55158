package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"idcards/internal/utils/logger"
)

const (
	StatusOK       = "OK"
	StatusDegraded = "DEGRADED"

	checkTimeout = 2 * time.Second
)

// Pinger - зависимость, доступность которой видна в health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
	checks     map[string]Pinger
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares, checks map[string]Pinger) *Handler {
	return &Handler{
		log:        log.With(slog.String("component", "health_handler")),
		middleware: middleware,
		checks:     checks,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	out := &Output{Body: Response{Status: StatusOK}}
	if len(h.checks) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	out.Body.Checks = make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.Warn("dependency unavailable", slog.String("dependency", name), logger.Err(err))
			out.Body.Checks[name] = err.Error()
			out.Body.Status = StatusDegraded
			continue
		}
		out.Body.Checks[name] = StatusOK
	}
	return out, nil
}
