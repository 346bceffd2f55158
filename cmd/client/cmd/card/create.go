package card

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var createFlags fieldFlags

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать карточку",
	Example: `  idcards card create --institution "Springfield University" --holder "Ann Lee" \
    --programme "Computer Science" --code CS-2023-0042 --from 2023-09 --to 2027-06`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		c, err := app.CreateCard(cmd.Context(), createFlags.fields())
		if err != nil {
			return fmt.Errorf("ошибка создания карточки: %w", err)
		}

		color.Green("Карточка создана: %s", c.ID)
		return printCard(os.Stdout, formatText, c)
	},
}

func init() {
	createFlags.bind(CreateCmd.Flags())
	_ = CreateCmd.MarkFlagRequired("institution")
	_ = CreateCmd.MarkFlagRequired("holder")
}
