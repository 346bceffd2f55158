package card

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-list",
		Method:      http.MethodGet,
		Path:        "/api/cards",
		Summary:     "Список карточек, новые первыми",
		Tags:        []string{"cards"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "cards-create",
		Method:        http.MethodPost,
		Path:          "/api/cards",
		Summary:       "Создать карточку",
		Tags:          []string{"cards"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-get",
		Method:      http.MethodGet,
		Path:        "/api/cards/{id}",
		Summary:     "Получить карточку",
		Tags:        []string{"cards"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-update",
		Method:      http.MethodPut,
		Path:        "/api/cards/{id}",
		Summary:     "Обновить карточку",
		Tags:        []string{"cards"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "cards-delete",
		Method:        http.MethodDelete,
		Path:          "/api/cards/{id}",
		Summary:       "Удалить карточку",
		Tags:          []string{"cards"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) previewOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-preview",
		Method:      http.MethodGet,
		Path:        "/api/cards/{id}/preview",
		Summary:     "HTML-превью карточки",
		Tags:        []string{"cards"},
		Security:    bearer,
		Middlewares: h.middleware,
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Card document",
				Content:     map[string]*huma.MediaType{"text/html": {}},
			},
		},
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "cards-export",
		Method:      http.MethodGet,
		Path:        "/api/cards/{id}/export",
		Summary:     "Экспорт карточки в PNG",
		Description: "Renders the card at 4x scale on a white background and returns it as an attachment.",
		Tags:        []string{"cards"},
		Security:    bearer,
		Middlewares: h.middleware,
		Responses: map[string]*huma.Response{
			"200": {
				Description: "PNG image",
				Content:     map[string]*huma.MediaType{"image/png": {}},
			},
		},
	}
}
