package render

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"

	"idcards/internal/domain/card"
	"idcards/internal/export"
)

// Service отдаёт HTML-превью и PNG-экспорт карточек.
type Service struct {
	mounter    Mounter
	rasterizer export.Rasterizer
	opts       []export.Option
	group      singleflight.Group
	log        *slog.Logger
}

func NewService(mounter Mounter, rasterizer export.Rasterizer, log *slog.Logger, opts ...export.Option) *Service {
	log = log.With("component", "render_service")
	return &Service{
		mounter:    mounter,
		rasterizer: rasterizer,
		opts:       append([]export.Option{export.WithLogger(log)}, opts...),
		log:        log,
	}
}

// Preview возвращает документ с карточкой.
func (s *Service) Preview(_ context.Context, c card.Card) ([]byte, error) {
	return HTML(c)
}

// Export прогоняет карточку через конвейер. Одновременные экспорты
// одной версии записи разделяют один прогон.
func (s *Service) Export(ctx context.Context, c card.Card) (export.Artifact, error) {
	v, err, shared := s.group.Do(c.Version(), func() (any, error) {
		return s.export(ctx, c)
	})
	if shared {
		s.log.Debug("export shared with concurrent request", "card_id", c.ID)
	}
	if err != nil {
		return export.Artifact{}, err
	}
	return v.(export.Artifact), nil
}

func (s *Service) export(ctx context.Context, c card.Card) (export.Artifact, error) {
	view, err := s.mounter.Mount(ctx, c)
	if err != nil {
		return export.Artifact{}, fmt.Errorf("mount card: %w", err)
	}
	defer view.Close()

	var artifact export.Artifact
	capture := export.DeliverFunc(func(_ context.Context, a export.Artifact) error {
		artifact = a
		return nil
	})

	if err := export.New(view, s.rasterizer, capture, s.opts...).Export(ctx, c); err != nil {
		return export.Artifact{}, err
	}
	return artifact, nil
}
