package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"idcards/cmd/client/cmd/types"
	"idcards/internal/app/client"
	"idcards/internal/app/client/config"
	serverconfig "idcards/internal/app/server/config"
	"idcards/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
	exportDir string
)

var rootCmd = &cobra.Command{
	Use:   "idcards",
	Short: "idcards - клиент сервиса студенческих билетов",
	Long: `idcards управляет студенческими билетами на сервере: создание,
редактирование, поиск, превью и экспорт карточки в PNG.

Список карточек кэшируется локально, поиск по кэшу работает без сети.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if exportDir != "" {
		cfg.ExportDir = exportDir
	}

	env := serverconfig.EnvProd
	if debug {
		env = serverconfig.EnvLocal
	}
	log := logger.New(env).With(slog.String("app", "client"))

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp(cmd *cobra.Command, _ []string) error {
	app, err := types.App(cmd)
	if err != nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.idcards/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "подробные логи")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера host:port")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", "", "каталог для PNG и превью")
}
