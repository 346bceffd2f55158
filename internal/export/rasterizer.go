package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// RasterOptions - параметры внешнего движка снимков.
type RasterOptions struct {
	// Scale - коэффициент передискретизации относительно CSS-пикселей.
	Scale float64
	// Background заливает прозрачные области.
	Background color.Color
	// AllowCrossOrigin разрешает ресурсы с других источников.
	AllowCrossOrigin bool
}

// DefaultRasterOptions - фиксированные параметры экспорта.
var DefaultRasterOptions = RasterOptions{
	Scale:            4,
	Background:       color.White,
	AllowCrossOrigin: true,
}

// Rasterizer - внешний движок, превращающий поверхность в пиксели.
type Rasterizer interface {
	Rasterize(ctx context.Context, s Surface, opts RasterOptions) (image.Image, error)
}

// RasterizerFunc адаптирует функцию к Rasterizer.
type RasterizerFunc func(ctx context.Context, s Surface, opts RasterOptions) (image.Image, error)

func (f RasterizerFunc) Rasterize(ctx context.Context, s Surface, opts RasterOptions) (image.Image, error) {
	return f(ctx, s, opts)
}

// rasterize вызывает движок и приводит результат к непрозрачному
// изображению ровно Scale x логический размер поверхности.
func rasterize(ctx context.Context, r Rasterizer, s Surface, opts RasterOptions) (*image.RGBA, error) {
	box, err := s.Box(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: measure surface: %v", ErrRasterizationFailed, err)
	}
	if box.Empty() {
		return nil, fmt.Errorf("%w: surface %s has empty box", ErrRasterizationFailed, s.ID())
	}

	img, err := r.Rasterize(ctx, s, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrRasterizationFailed, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: engine returned empty image", ErrRasterizationFailed)
	}

	w := int(math.Round(box.Width * opts.Scale))
	h := int(math.Round(box.Height * opts.Scale))

	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	src := img.Bounds()
	if src.Dx() == w && src.Dy() == h {
		draw.Draw(out, out.Bounds(), img, src.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), img, src, draw.Over, nil)
	}

	return out, nil
}
