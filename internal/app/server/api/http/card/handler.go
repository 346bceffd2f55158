package card

import (
	"context"
	"mime"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/card"
	"idcards/internal/domain/identity"
	"idcards/internal/export"
)

// Renderer строит превью и PNG карточки.
type Renderer interface {
	Preview(ctx context.Context, c card.Card) ([]byte, error)
	Export(ctx context.Context, c card.Card) (export.Artifact, error)
}

type Handler struct {
	service    card.Servicer
	renderer   Renderer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service card.Servicer, renderer Renderer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		renderer:   renderer,
		log:        log.With(slog.String("component", "card_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.previewOp(), h.preview)
	huma.Register(api, h.exportOp(), h.export)
}

// who отсутствие identity эквивалентно анонимному вызову, отказ
// выдаёт сам сервис.
func who(ctx context.Context) identity.Identity {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return identity.Anonymous()
	}
	return id
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	cards, err := h.service.Search(ctx, who(ctx), input.Query)
	if err != nil {
		return nil, toHTTP(h.log, "list cards", err)
	}
	if cards == nil {
		cards = []card.Card{}
	}
	return &listOutput{Body: ListResponse{Cards: cards, Total: len(cards)}}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	id, err := h.service.Create(ctx, who(ctx), input.Body.fields())
	if err != nil {
		return nil, toHTTP(h.log, "create card", err)
	}
	return &createOutput{
		Location: "/api/cards/" + id,
		Body:     CreateResponse{ID: id},
	}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*cardOutput, error) {
	c, err := h.service.Get(ctx, who(ctx), input.ID)
	if err != nil {
		return nil, toHTTP(h.log, "get card", err)
	}
	return &cardOutput{Body: *c}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*cardOutput, error) {
	u := who(ctx)
	if err := h.service.Update(ctx, u, card.Card{ID: input.ID, Fields: input.Body.fields()}); err != nil {
		return nil, toHTTP(h.log, "update card", err)
	}

	c, err := h.service.Get(ctx, u, input.ID)
	if err != nil {
		return nil, toHTTP(h.log, "get card", err)
	}
	return &cardOutput{Body: *c}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*struct{}, error) {
	if err := h.service.Delete(ctx, who(ctx), input.ID); err != nil {
		return nil, toHTTP(h.log, "delete card", err)
	}
	return &struct{}{}, nil
}

func (h *Handler) preview(ctx context.Context, input *getInput) (*previewOutput, error) {
	c, err := h.service.Get(ctx, who(ctx), input.ID)
	if err != nil {
		return nil, toHTTP(h.log, "get card", err)
	}

	doc, err := h.renderer.Preview(ctx, *c)
	if err != nil {
		return nil, toHTTP(h.log, "preview card", err)
	}
	return &previewOutput{ContentType: "text/html; charset=utf-8", Body: doc}, nil
}

func (h *Handler) export(ctx context.Context, input *exportInput) (*exportOutput, error) {
	c, err := h.service.Get(ctx, who(ctx), input.ID)
	if err != nil {
		return nil, toHTTP(h.log, "get card", err)
	}

	artifact, err := h.renderer.Export(ctx, *c)
	if err != nil {
		return nil, toHTTP(h.log, "export card", err)
	}
	h.service.Notify(ctx, card.EventExported, c)

	return &exportOutput{
		ContentType:        "image/png",
		ContentDisposition: mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}),
		Body:               artifact.Data,
	}, nil
}
