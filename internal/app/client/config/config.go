package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".idcards"
	defaultExportDir     = "."

	configName = "config"
	configType = "yaml"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	ConfigDir     string `mapstructure:"config_dir"`
	ExportDir     string `mapstructure:"export_dir"`
	EnableTLS     bool   `mapstructure:"enable_tls"`
	CACertPath    string `mapstructure:"ca_cert_path"`
	TokenPath     string `mapstructure:"-"`
	DataPath      string `mapstructure:"-"`
}

// Load собирает конфигурацию клиента из .env, переменных окружения и
// config.yaml. cfgFile переопределяет поиск файла конфигурации.
func Load(cfgFile string) (*Config, error) {
	for _, envPath := range []string{".env", "../.env"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("load %s: %w", envPath, err)
			}
			break
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("export_dir", defaultExportDir)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	v.SetDefault("config_dir", filepath.Join(homeDir, defaultConfigDir))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(v.GetString("config_dir"))
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType(configType)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgFile != "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:           v.GetString("app_env"),
		ServerAddress: v.GetString("server_address"),
		ConfigDir:     v.GetString("config_dir"),
		ExportDir:     v.GetString("export_dir"),
		EnableTLS:     v.GetBool("enable_tls"),
		CACertPath:    v.GetString("ca_cert_path"),
	}
	cfg.TokenPath = filepath.Join(cfg.ConfigDir, "token")
	cfg.DataPath = filepath.Join(cfg.ConfigDir, "cards.db")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EnsureDirs создает рабочие директории клиента.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.ConfigDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	return nil
}

// Save записывает текущие настройки в config.yaml внутри ConfigDir.
func (c *Config) Save() (string, error) {
	v := viper.New()
	v.Set("app_env", c.Env)
	v.Set("server_address", c.ServerAddress)
	v.Set("export_dir", c.ExportDir)
	v.Set("enable_tls", c.EnableTLS)
	if c.CACertPath != "" {
		v.Set("ca_cert_path", c.CACertPath)
	}

	path := filepath.Join(c.ConfigDir, configName+"."+configType)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return errors.New("server_address must not be empty")
	}
	if c.ConfigDir == "" {
		return errors.New("config_dir must not be empty")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
