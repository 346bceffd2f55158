package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/auth"
	"idcards/cmd/client/cmd/card"
	"idcards/cmd/client/cmd/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Первоначальная настройка клиента",
	Long: `Команда init сохраняет config.yaml, создает каталоги клиента,
открывает локальный кэш карточек и проверяет соединение с сервером.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		path, cached, err := app.Init(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Конфигурация сохранена: %s\n", path)
		fmt.Printf("Карточек в кэше: %d\n", cached)

		if err := app.CheckConnection(cmd.Context()); err != nil {
			color.Yellow("Сервер %s недоступен: %v", app.Config().ServerAddress, err)
			fmt.Println("Поиск по кэшу доступен офлайн, остальные команды требуют сервер.")
		} else {
			color.Green("Соединение с сервером установлено")
		}

		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Зарегистрируйтесь: idcards auth register")
		fmt.Println("2. Войдите: idcards auth login")
		fmt.Println("3. Создайте карточку: idcards card create --institution ... --holder ...")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd, auth.LoginCmd, auth.LogoutCmd, auth.WhoAmICmd)

	rootCmd.AddCommand(card.CardCmd)
	card.CardCmd.AddCommand(
		card.CreateCmd,
		card.GetCmd,
		card.ListCmd,
		card.SearchCmd,
		card.UpdateCmd,
		card.DeleteCmd,
		card.PreviewCmd,
		card.ExportCmd,
	)
}
