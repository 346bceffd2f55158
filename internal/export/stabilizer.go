package export

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
)

const DefaultDesignWidth = 400

var layoutProps = []string{"overflow", "position", "height", "width"}

func layoutOverrides(designWidth int) map[string]string {
	return map[string]string{
		"overflow": "visible",
		"position": "relative",
		"height":   "auto",
		"width":    strconv.Itoa(designWidth) + "px",
	}
}

// LayoutGuard хранит исходные inline-стили поверхности и возвращает их
// при Release.
type LayoutGuard struct {
	surface Surface
	saved   map[string]string
	applied []string

	once sync.Once
	err  error
}

// Stabilize снимает ограничения раскладки поверхности: без обрезки,
// относительное позиционирование, высота по содержимому, ширина равна
// designWidth. Если применить переопределения не удалось, уже
// изменённые свойства возвращаются до выхода.
func Stabilize(ctx context.Context, s Surface, designWidth int) (*LayoutGuard, error) {
	if designWidth <= 0 {
		designWidth = DefaultDesignWidth
	}

	saved, err := s.Style(ctx, layoutProps...)
	if err != nil {
		return nil, fmt.Errorf("capture layout: %w", err)
	}

	g := &LayoutGuard{surface: s, saved: saved}
	overrides := layoutOverrides(designWidth)

	for _, prop := range layoutProps {
		// свойство считается затронутым ещё до записи
		g.applied = append(g.applied, prop)
		if err := s.SetStyle(ctx, prop, overrides[prop]); err != nil {
			if rerr := g.Release(ctx); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return nil, fmt.Errorf("override layout %s: %w", prop, err)
		}
	}

	return g, nil
}

// Release восстанавливает исходные значения. Повторные вызовы ничего не
// делают и возвращают результат первого. Отмена ctx на восстановление
// не влияет.
func (g *LayoutGuard) Release(ctx context.Context) error {
	if g == nil {
		return nil
	}

	g.once.Do(func() {
		ctx = context.WithoutCancel(ctx)

		var errs []error
		for i := len(g.applied) - 1; i >= 0; i-- {
			prop := g.applied[i]
			if err := g.surface.SetStyle(ctx, prop, g.saved[prop]); err != nil {
				errs = append(errs, fmt.Errorf("restore %s: %w", prop, err))
			}
		}
		g.err = errors.Join(errs...)
	})

	return g.err
}

// Saved возвращает копию захваченных значений.
func (g *LayoutGuard) Saved() map[string]string {
	out := make(map[string]string, len(g.saved))
	for k, v := range g.saved {
		out[k] = v
	}
	return out
}
