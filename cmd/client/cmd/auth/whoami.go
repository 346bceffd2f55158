package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
	"idcards/internal/app/client"
)

var WhoAmICmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		who, err := app.WhoAmI(cmd.Context())
		switch {
		case err == nil:
		case errors.Is(err, client.ErrUnauthorized):
			return fmt.Errorf("сессия истекла, войдите снова: idcards auth login")
		default:
			who = app.Identity().Current()
			fmt.Printf("(офлайн, сервер недоступен: %v)\n", err)
		}

		fmt.Printf("%s (id %d)\n", who.Login, who.UserID)
		return nil
	},
}
