package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Отзывает сессию на сервере, удаляет локальный токен и очищает кэш карточек.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			color.Yellow("Сессия на сервере не отозвана: %v", err)
		}
		fmt.Println("Вы вышли из системы")
		return nil
	},
}
