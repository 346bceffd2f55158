package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере. Токен сохраняется локально,
после входа список карточек загружается в кэш.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Вход в систему ===")
		login, err := readLogin()
		if err != nil {
			return err
		}
		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}

		who, err := app.Login(cmd.Context(), login, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}
		color.Green("Вход выполнен: %s", who.Login)

		cards, err := app.ListCards(cmd.Context(), "")
		if err != nil {
			color.Yellow("Не удалось загрузить карточки: %v", err)
			return nil
		}
		fmt.Printf("Карточек загружено в кэш: %d\n", len(cards))
		return nil
	},
}
