package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		login, err := readLogin()
		if err != nil {
			return err
		}
		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		id, err := app.Register(cmd.Context(), login, password)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		color.Green("Пользователь %s зарегистрирован (id %d)", login, id)
		fmt.Println("Теперь войдите в систему: idcards auth login")
		return nil
	},
}
