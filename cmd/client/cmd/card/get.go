package card

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var getOutput string

var GetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Показать карточку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		c, err := app.GetCard(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения карточки: %w", err)
		}
		return printCard(os.Stdout, getOutput, c)
	},
}

func init() {
	GetCmd.Flags().StringVarP(&getOutput, "output", "o", formatText, "формат вывода (text, json, yaml)")
}
