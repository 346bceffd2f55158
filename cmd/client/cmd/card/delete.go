package card

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"idcards/cmd/client/cmd/types"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить карточку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.RequireAuth(cmd)
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("Удалить карточку %s? [y/N]: ", args[0])
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Отменено")
				return nil
			}
		}

		if err := app.DeleteCard(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка удаления карточки: %w", err)
		}
		fmt.Println("Карточка удалена")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
