package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID:   "health-check",
		Method:        http.MethodGet,
		Path:          "/api/v1/health",
		Summary:       "Service health",
		Description:   "Pings the card store and the event bus. A failing dependency turns the status into DEGRADED, the response code stays 200.",
		DefaultStatus: http.StatusOK,
		Tags:          []string{"health"},
		Middlewares:   h.middleware,
	}
}
