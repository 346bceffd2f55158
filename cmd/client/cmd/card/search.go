package card

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var searchOutput string

var SearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Поиск по локальному кэшу",
	Long: `Ищет без учёта регистра по имени владельца, регистрационному номеру
и программе. Работает офлайн по данным последнего "card list".`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		cards, err := app.SearchLocal(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printCards(os.Stdout, searchOutput, cards)
	},
}

func init() {
	SearchCmd.Flags().StringVarP(&searchOutput, "output", "o", formatText, "формат вывода (text, json, yaml)")
}
