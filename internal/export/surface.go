// Package export снимает растровый снимок смонтированной карточки и
// отдаёт его получателю в виде PNG.
//
// Конвейер: Locator находит поверхность, AwaitAssets дожидается
// загрузки изображений, Stabilize фиксирует раскладку, Rasterizer
// снимает пиксели, Deliverer получает готовый файл.
package export

import (
	"context"
	"errors"
)

var (
	ErrNotMounted          = errors.New("surface not mounted")
	ErrAssetLoadFailed     = errors.New("asset failed to load")
	ErrRasterizationFailed = errors.New("rasterization failed")
	ErrEncodingFailed      = errors.New("image encoding failed")
	ErrDeliveryFailed      = errors.New("delivery failed")
)

// Box - прямоугольник поверхности в координатах документа, CSS-пиксели.
type Box struct {
	X, Y          float64
	Width, Height float64
}

func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Surface - визуальная проекция одной карточки в живом дереве.
type Surface interface {
	// ID - идентификатор элемента, "card-<recordID>".
	ID() string
	// Assets перечисляет растровые ресурсы внутри поверхности.
	Assets(ctx context.Context) ([]Asset, error)
	// Style читает inline-значения свойств. Отсутствующее свойство - "".
	Style(ctx context.Context, props ...string) (map[string]string, error)
	// SetStyle задаёт inline-значение свойства. "" удаляет его.
	SetStyle(ctx context.Context, prop, value string) error
	// Box возвращает текущие логические размеры.
	Box(ctx context.Context) (Box, error)
}

// Asset - растровый ресурс поверхности.
type Asset interface {
	Source() string
	// Ready запускает ожидание загрузки. Future разрешается при load
	// и отклоняется при error.
	Ready(ctx context.Context) *Future
}

// Locator находит смонтированную поверхность по id карточки.
type Locator interface {
	// Locate возвращает ErrNotMounted, если поверхности нет.
	Locate(ctx context.Context, recordID string) (Surface, error)
}

// SurfaceID выводит id элемента поверхности из id карточки.
func SurfaceID(recordID string) string {
	return "card-" + recordID
}
