package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container копит мидлвари для очередного хендлера.
type Container struct {
	huma.Middlewares
}

func NewContainer() *Container {
	return &Container{
		Middlewares: make(huma.Middlewares, 0),
	}
}

// Add добавляет мидлвари в порядке вызова.
func (mc *Container) Add(mws ...func(ctx huma.Context, next func(huma.Context))) {
	mc.Middlewares = append(mc.Middlewares, mws...)
}

// GetAllAndClear возвращает накопленные мидлвари и очищает контейнер,
// чтобы следующий хендлер собирал свой набор с нуля.
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := mc.Middlewares
	mc.Middlewares = nil
	return result
}
