package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var (
	exportDir     string
	exportTimeout time.Duration
)

var ExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Экспортировать карточку в PNG",
	Long: `Сервер снимает карточку в 4-кратном разрешении на белом фоне.
Файл сохраняется как <Имя-Владельца>-ID-Card.png.

Без --timeout экспорт ждёт, пока сервер не ответит или команду не прервут.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if exportTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, exportTimeout)
			defer cancel()
		}

		path, err := app.Export(ctx, args[0], exportDir)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("экспорт не завершился за %s", exportTimeout)
		}
		if err != nil {
			return fmt.Errorf("ошибка экспорта: %w", err)
		}

		color.Green("Сохранено: %s", path)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVar(&exportDir, "dir", "", "каталог (по умолчанию EXPORT_DIR)")
	ExportCmd.Flags().DurationVar(&exportTimeout, "timeout", 0, "ограничение времени экспорта, 0 - без ограничения")
}
