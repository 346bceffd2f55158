package types

import (
	"errors"

	"github.com/spf13/cobra"

	"idcards/internal/app/client"
)

type contextKey string

// ClientAppKey - ключ, под которым root кладёт *client.App в контекст команды.
const ClientAppKey contextKey = "app"

var ErrNoApp = errors.New("приложение не инициализировано")

// App достаёт приложение из контекста команды.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

// RequireAuth возвращает приложение, только если пользователь вошёл.
func RequireAuth(cmd *cobra.Command) (*client.App, error) {
	app, err := App(cmd)
	if err != nil {
		return nil, err
	}
	if !app.IsAuthenticated() {
		return nil, errors.New("вы не вошли в систему: idcards auth login")
	}
	return app, nil
}
