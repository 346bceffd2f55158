package card

import (
	"fmt"

	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var previewDir string

var PreviewCmd = &cobra.Command{
	Use:   "preview [id]",
	Short: "Сохранить HTML-превью карточки",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		path, err := app.Preview(cmd.Context(), args[0], previewDir)
		if err != nil {
			return fmt.Errorf("ошибка превью: %w", err)
		}
		fmt.Printf("Превью сохранено: %s\n", path)
		return nil
	},
}

func init() {
	PreviewCmd.Flags().StringVar(&previewDir, "dir", "", "каталог (по умолчанию EXPORT_DIR)")
}
