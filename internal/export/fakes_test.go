package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"sync"
	"sync/atomic"
)

type fakeAsset struct {
	src    string
	future *Future
}

func (a *fakeAsset) Source() string { return a.src }

func (a *fakeAsset) Ready(context.Context) *Future { return a.future }

func loadedAsset(src string) *fakeAsset {
	return &fakeAsset{src: src, future: Resolved()}
}

func pendingAsset(src string) *fakeAsset {
	return &fakeAsset{src: src, future: NewFuture()}
}

type fakeSurface struct {
	mu     sync.Mutex
	id     string
	styles map[string]string
	assets []Asset
	box    Box

	// failSet отклоняет запись prop=value
	failSet map[string]string
	sets    []string
}

func newFakeSurface(id string, assets ...Asset) *fakeSurface {
	return &fakeSurface{
		id: SurfaceID(id),
		styles: map[string]string{
			"overflow": "hidden",
			"position": "absolute",
			"height":   "280px",
			"width":    "100%",
		},
		assets: assets,
		box:    Box{Width: 400, Height: 280},
	}
}

func (s *fakeSurface) ID() string { return s.id }

func (s *fakeSurface) Assets(ctx context.Context) ([]Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.assets, nil
}

func (s *fakeSurface) Style(ctx context.Context, props ...string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(props))
	for _, p := range props {
		out[p] = s.styles[p]
	}
	return out, nil
}

func (s *fakeSurface) SetStyle(ctx context.Context, prop, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.failSet[prop]; ok && v == value {
		return errors.New("style is read-only")
	}
	s.sets = append(s.sets, prop+"="+value)
	if value == "" {
		delete(s.styles, prop)
		return nil
	}
	s.styles[prop] = value
	return nil
}

func (s *fakeSurface) Box(ctx context.Context) (Box, error) {
	if err := ctx.Err(); err != nil {
		return Box{}, err
	}
	return s.box, nil
}

func (s *fakeSurface) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.styles))
	for k, v := range s.styles {
		out[k] = v
	}
	return out
}

type fakeLocator map[string]Surface

func (l fakeLocator) Locate(_ context.Context, recordID string) (Surface, error) {
	s, ok := l[recordID]
	if !ok {
		return nil, ErrNotMounted
	}
	return s, nil
}

// fakeRasterizer отдаёт полупрозрачное изображение размером
// box * scale * factor.
type fakeRasterizer struct {
	calls  atomic.Int32
	factor float64
	err    error
	empty  bool
	// styles фиксирует стили поверхности на момент снимка
	styles map[string]string
}

func (r *fakeRasterizer) Rasterize(ctx context.Context, s Surface, opts RasterOptions) (image.Image, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	if fs, ok := s.(*fakeSurface); ok {
		r.styles = fs.snapshot()
	}
	if r.empty {
		return image.NewRGBA(image.Rectangle{}), nil
	}

	box, err := s.Box(ctx)
	if err != nil {
		return nil, err
	}
	factor := r.factor
	if factor == 0 {
		factor = 1
	}
	w := int(math.Round(box.Width * opts.Scale * factor))
	h := int(math.Round(box.Height * opts.Scale * factor))

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0x80})
		}
	}
	return img, nil
}

type captureDeliverer struct {
	mu        sync.Mutex
	artifacts []Artifact
	err       error
}

func (d *captureDeliverer) Deliver(_ context.Context, a Artifact) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.artifacts = append(d.artifacts, a)
	return nil
}
