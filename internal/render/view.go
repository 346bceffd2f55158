package render

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"

	"idcards/internal/domain/card"
	"idcards/internal/export"
	"idcards/internal/infrastructure/browser"
)

const (
	viewportWidth  = 800
	viewportHeight = 600
)

// PageSource выдаёт чистые страницы браузера.
type PageSource interface {
	NewPage(ctx context.Context) (*browser.Lease, error)
}

// View - страница с одной смонтированной карточкой.
type View interface {
	export.Locator
	Close()
}

// Mounter монтирует карточку в отдельное представление.
type Mounter interface {
	Mount(ctx context.Context, c card.Card) (View, error)
}

// Renderer монтирует карточки на свежих страницах Chrome.
type Renderer struct {
	pages PageSource
}

func NewRenderer(pages PageSource) *Renderer {
	return &Renderer{pages: pages}
}

func (r *Renderer) Mount(ctx context.Context, c card.Card) (View, error) {
	doc, err := HTML(c)
	if err != nil {
		return nil, err
	}

	lease, err := r.pages.NewPage(ctx)
	if err != nil {
		return nil, err
	}

	page := lease.Page.Context(ctx)

	metrics := proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}
	if err := metrics.Call(page); err != nil {
		lease.Release()
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := (proto.PageSetBypassCSP{Enabled: true}).Call(page); err != nil {
		lease.Release()
		return nil, fmt.Errorf("bypass csp: %w", err)
	}
	if err := page.SetDocumentContent(string(doc)); err != nil {
		lease.Release()
		return nil, fmt.Errorf("mount card %s: %w", c.ID, err)
	}

	return &pageView{lease: lease}, nil
}

type pageView struct {
	lease *browser.Lease
}

// Locate ищет элемент card-<id> на странице.
func (v *pageView) Locate(ctx context.Context, recordID string) (export.Surface, error) {
	id := export.SurfaceID(recordID)

	ok, el, err := v.lease.Page.Context(ctx).Has(fmt.Sprintf(`[id=%q]`, id))
	if err != nil {
		return nil, fmt.Errorf("locate %s: %w", id, err)
	}
	if !ok {
		return nil, export.ErrNotMounted
	}

	return &Surface{id: id, page: v.lease.Page, el: el}, nil
}

func (v *pageView) Close() {
	v.lease.Release()
}
