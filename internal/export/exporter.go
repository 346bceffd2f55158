package export

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/slog"

	"idcards/internal/domain/card"
	"idcards/internal/utils/logger"
)

// Exporter проводит одну карточку через конвейер экспорта.
// Экземпляр не предназначен для параллельного экспорта одной и той же
// поверхности: пара Stabilize/Release не реентерабельна.
type Exporter struct {
	locator     Locator
	rasterizer  Rasterizer
	deliverer   Deliverer
	designWidth int
	hook        StateHook
	metrics     *Metrics
	tracer      trace.Tracer
	log         *slog.Logger
}

type Option func(*Exporter)

func WithStateHook(h StateHook) Option {
	return func(e *Exporter) { e.hook = h }
}

func WithDesignWidth(px int) Option {
	return func(e *Exporter) {
		if px > 0 {
			e.designWidth = px
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Exporter) { e.tracer = t }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

func New(locator Locator, rasterizer Rasterizer, deliverer Deliverer, opts ...Option) *Exporter {
	e := &Exporter{
		locator:     locator,
		rasterizer:  rasterizer,
		deliverer:   deliverer,
		designWidth: DefaultDesignWidth,
		tracer:      otel.Tracer("idcards/export"),
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "exporter")
	return e
}

// Export снимает карточку c и передаёт PNG получателю. Любая ошибка
// логируется здесь и возвращается; частичный результат не передаётся,
// повторов нет. Раскладка восстанавливается на любом пути выхода после
// стабилизации.
func (e *Exporter) Export(ctx context.Context, c card.Card) (err error) {
	ctx, span := e.tracer.Start(ctx, "export.card", trace.WithAttributes(
		attribute.String("card.id", c.ID),
	))

	r := &run{exporter: e, span: span, state: StateIdle, entered: time.Now()}
	start := r.entered
	e.metrics.begin()

	defer func() {
		if err != nil {
			failedAt := r.state
			if r.failedAt != StateIdle {
				failedAt = r.failedAt
			}
			r.to(StateFailed)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			e.log.Error("card export failed",
				"card_id", c.ID,
				"stage", failedAt.String(),
				logger.Err(err),
			)
			e.metrics.finish(failedAt, err, time.Since(start))
		} else {
			e.metrics.finish(StateDone, nil, time.Since(start))
		}
		span.End()
	}()

	r.to(StateLocating)
	surface, err := e.locator.Locate(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("locate card %s: %w", c.ID, err)
	}

	r.to(StateAwaitingAssets)
	if err := AwaitAssets(ctx, surface); err != nil {
		return err
	}

	r.to(StateStabilizing)
	guard, err := Stabilize(ctx, surface, e.designWidth)
	if err != nil {
		return err
	}
	defer guard.Release(ctx)

	r.to(StateRasterizing)
	img, rasterErr := rasterize(ctx, e.rasterizer, surface, DefaultRasterOptions)

	r.to(StateRestoring)
	if err := guard.Release(ctx); err != nil {
		e.log.Warn("failed to restore card layout", "card_id", c.ID, logger.Err(err))
	}

	if rasterErr != nil {
		r.failedAt = StateRasterizing
		return rasterErr
	}

	r.to(StateDelivering)
	return e.deliver(ctx, c, img, r)
}

func (e *Exporter) deliver(ctx context.Context, c card.Card, img image.Image, r *run) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	a := Artifact{Filename: Filename(c.HolderName), Data: data}
	if err := e.deliverer.Deliver(ctx, a); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDeliveryFailed, a.Filename, err)
	}

	r.to(StateDone)
	e.log.Info("card exported", "card_id", c.ID, "filename", a.Filename, "bytes", len(data))
	return nil
}

type run struct {
	exporter *Exporter
	span     trace.Span
	state    State
	failedAt State
	entered  time.Time
}

func (r *run) to(next State) {
	now := time.Now()
	prev := r.state
	r.exporter.metrics.stage(prev, now.Sub(r.entered))
	r.state = next
	r.entered = now

	r.span.AddEvent(next.String())
	if r.exporter.hook != nil {
		r.exporter.hook(prev, next)
	}
}
