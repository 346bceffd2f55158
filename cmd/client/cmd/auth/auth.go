package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AuthCmd - родительская команда для операций с учётной записью.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация, вход, выход и проверка текущего пользователя.`,
}

func readLogin() (string, error) {
	fmt.Print("Логин: ")
	login, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && login == "" {
		return "", fmt.Errorf("ошибка чтения логина: %w", err)
	}
	login = strings.TrimSpace(login)
	if login == "" {
		return "", fmt.Errorf("логин не может быть пустым")
	}
	return login, nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}
