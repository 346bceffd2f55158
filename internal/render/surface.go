package render

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"

	"idcards/internal/export"
)

// Скрипты выполняются с this = элемент поверхности.
const (
	jsReadStyle = `function (props) {
		const out = {};
		for (const p of props) out[p] = this.style.getPropertyValue(p);
		return out;
	}`

	jsWriteStyle = `function (prop, value) {
		if (value === '') this.style.removeProperty(prop);
		else this.style.setProperty(prop, value);
	}`

	jsBox = `function () {
		const r = this.getBoundingClientRect();
		return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};
	}`

	// Промис разрешается при load и отклоняется при error.
	// Уже загруженное изображение с нулевой шириной считается битым.
	jsAwaitImage = `function () {
		const img = this;
		return new Promise((resolve, reject) => {
			const fail = () => reject(new Error('image failed to load: ' + (img.currentSrc || img.src)));
			if (img.complete) {
				img.naturalWidth > 0 ? resolve(true) : fail();
				return;
			}
			img.addEventListener('load', () => resolve(true), {once: true});
			img.addEventListener('error', fail, {once: true});
		});
	}`
)

// Surface - элемент карточки на странице Chrome.
type Surface struct {
	id   string
	page *rod.Page
	el   *rod.Element
}

var _ export.Surface = (*Surface)(nil)

func (s *Surface) ID() string {
	return s.id
}

func (s *Surface) Assets(ctx context.Context) ([]export.Asset, error) {
	els, err := s.el.Context(ctx).Elements("img")
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	assets := make([]export.Asset, 0, len(els))
	for _, el := range els {
		assets = append(assets, &imageAsset{el: el})
	}
	return assets, nil
}

func (s *Surface) Style(ctx context.Context, props ...string) (map[string]string, error) {
	res, err := s.el.Context(ctx).Eval(jsReadStyle, props)
	if err != nil {
		return nil, fmt.Errorf("read style: %w", err)
	}

	out := make(map[string]string, len(props))
	for _, p := range props {
		out[p] = res.Value.Get(p).Str()
	}
	return out, nil
}

func (s *Surface) SetStyle(ctx context.Context, prop, value string) error {
	if _, err := s.el.Context(ctx).Eval(jsWriteStyle, prop, value); err != nil {
		return fmt.Errorf("write style %s: %w", prop, err)
	}
	return nil
}

func (s *Surface) Box(ctx context.Context) (export.Box, error) {
	res, err := s.el.Context(ctx).Eval(jsBox)
	if err != nil {
		return export.Box{}, fmt.Errorf("measure: %w", err)
	}

	v := res.Value
	return export.Box{
		X:      v.Get("x").Num(),
		Y:      v.Get("y").Num(),
		Width:  v.Get("width").Num(),
		Height: v.Get("height").Num(),
	}, nil
}

type imageAsset struct {
	el *rod.Element
}

func (a *imageAsset) Source() string {
	src, err := a.el.Attribute("src")
	if err != nil || src == nil {
		return ""
	}
	return *src
}

func (a *imageAsset) Ready(ctx context.Context) *export.Future {
	return export.Async(func() error {
		_, err := a.el.Context(ctx).Eval(jsAwaitImage)
		return err
	})
}
