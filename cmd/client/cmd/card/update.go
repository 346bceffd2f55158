package card

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var updateFlags fieldFlags

var UpdateCmd = &cobra.Command{
	Use:     "update [id]",
	Short:   "Обновить карточку",
	Long:    `Меняет только поля, переданные флагами. Остальные поля сохраняются.`,
	Example: `  idcards card update 0b6f1c2e-... --to 2028-06 --scheme teal`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		current, err := app.GetCard(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения карточки: %w", err)
		}

		c, err := app.UpdateCard(cmd.Context(), current.ID, updateFlags.apply(cmd.Flags(), current.Fields))
		if err != nil {
			return fmt.Errorf("ошибка обновления карточки: %w", err)
		}

		color.Green("Карточка обновлена")
		return printCard(os.Stdout, formatText, c)
	},
}

func init() {
	updateFlags.bind(UpdateCmd.Flags())
}
