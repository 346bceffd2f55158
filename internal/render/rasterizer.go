package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/go-rod/rod/lib/proto"

	"idcards/internal/export"
)

// Rasterizer снимает поверхность через Page.captureScreenshot с обрезкой
// по рамке элемента.
type Rasterizer struct{}

var _ export.Rasterizer = Rasterizer{}

func (Rasterizer) Rasterize(ctx context.Context, s export.Surface, opts export.RasterOptions) (image.Image, error) {
	rs, ok := s.(*Surface)
	if !ok {
		return nil, fmt.Errorf("unsupported surface %T", s)
	}
	page := rs.page.Context(ctx)

	bg := proto.EmulationSetDefaultBackgroundColorOverride{Color: toDOMRGBA(opts.Background)}
	if err := bg.Call(page); err != nil {
		return nil, fmt.Errorf("set background: %w", err)
	}
	defer func() {
		_ = proto.EmulationSetDefaultBackgroundColorOverride{}.Call(rs.page)
	}()

	if opts.AllowCrossOrigin {
		if err := (proto.PageSetBypassCSP{Enabled: true}).Call(page); err != nil {
			return nil, fmt.Errorf("bypass csp: %w", err)
		}
	}

	box, err := rs.Box(ctx)
	if err != nil {
		return nil, err
	}

	shot, err := proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  opts.Scale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot.Data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func toDOMRGBA(c color.Color) *proto.DOMRGBA {
	if c == nil {
		c = color.White
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return &proto.DOMRGBA{R: int(n.R), G: int(n.G), B: int(n.B)}
}
