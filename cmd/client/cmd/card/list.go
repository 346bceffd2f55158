package card

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var (
	listOutput string
	listQuery  string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список карточек, новые первыми",
	Long: `Загружает карточки с сервера. Без фильтра список сохраняется
в локальный кэш для офлайн-поиска.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		cards, err := app.ListCards(cmd.Context(), listQuery)
		if err != nil {
			return fmt.Errorf("ошибка получения списка: %w", err)
		}
		return printCards(os.Stdout, listOutput, cards)
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listOutput, "output", "o", formatText, "формат вывода (text, json, yaml)")
	ListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "фильтр по имени, номеру или программе")
}
