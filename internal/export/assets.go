package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// AwaitAssets ждёт, пока загрузятся все растровые ресурсы поверхности.
// Первая же ошибка загрузки прерывает ожидание с ErrAssetLoadFailed.
// Собственного таймаута нет: выйти раньше можно только отменой ctx,
// и тогда возвращается ошибка контекста.
func AwaitAssets(ctx context.Context, s Surface) error {
	assets, err := s.Assets(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: enumerate assets: %v", ErrAssetLoadFailed, err)
	}

	if len(assets) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range assets {
		ready := a.Ready(gctx)
		src := a.Source()
		g.Go(func() error {
			select {
			case <-ready.Done():
				if err := ready.Err(); err != nil {
					return fmt.Errorf("%w: %s: %v", ErrAssetLoadFailed, src, err)
				}
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
