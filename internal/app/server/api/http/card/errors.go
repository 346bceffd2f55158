package card

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/card"
	"idcards/internal/export"
	"idcards/internal/utils/logger"
)

// statusClientClosed - клиент ушёл раньше ответа (nginx 499).
const statusClientClosed = 499

// toHTTP переводит ошибки домена и конвейера экспорта в ответы huma.
// Неизвестные ошибки логируются и скрываются за 500.
func toHTTP(log *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, card.ErrNotAuthenticated):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, card.ErrNotAuthorized):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, card.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, card.ErrInvalidData), errors.Is(err, card.ErrInvalidValidity):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, export.ErrNotMounted):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, export.ErrAssetLoadFailed):
		return huma.NewError(http.StatusFailedDependency, err.Error())
	case errors.Is(err, context.Canceled):
		log.Debug(op+" canceled", logger.Err(err))
		return huma.NewError(statusClientClosed, op+" canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(op + " timed out")
	case errors.Is(err, export.ErrRasterizationFailed),
		errors.Is(err, export.ErrEncodingFailed),
		errors.Is(err, export.ErrDeliveryFailed):
		log.Error(op, logger.Err(err))
		return huma.Error500InternalServerError(err.Error())
	default:
		log.Error(op, logger.Err(err))
		return huma.Error500InternalServerError(op + " failed")
	}
}
