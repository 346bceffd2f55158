package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	CardStorePostgres = "postgres"
	CardStoreMongo    = "mongo"

	defaultRunAddress  = ":8080"
	defaultDesignWidth = 400
	defaultRateLimit   = 120
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Logger  Logger
	Events  Events
	Browser Browser
	Export  Export
}

type DB struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
	CardStore   string `env:"CARD_STORE"`
	MongoURI    string `env:"MONGODB_URI"`
}

type Server struct {
	RunAddress  string   `env:"RUN_ADDRESS"`
	RateLimit   int      `env:"RATE_LIMIT"`
	CORSOrigins []string `env:"CORS_ORIGINS"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

type Events struct {
	NatsURL   string `env:"NATS_URL"`
	NatsToken string `env:"NATS_TOKEN"`
}

type Browser struct {
	// RemoteURL - websocket внешнего Chrome; пусто - запустить локальный
	RemoteURL       string        `env:"CHROME_URL"`
	Bin             string        `env:"CHROME_BIN"`
	RecycleInterval time.Duration `env:"BROWSER_RECYCLE_INTERVAL"`
}

type Export struct {
	DesignWidth int `env:"EXPORT_DESIGN_WIDTH"`
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("card_store", CardStorePostgres)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("rate_limit", defaultRateLimit)
	viper.SetDefault("browser_recycle_interval", 4*time.Hour)
	viper.SetDefault("export_design_width", defaultDesignWidth)

	return &Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
			CardStore:   strings.ToLower(viper.GetString("card_store")),
			MongoURI:    viper.GetString("mongodb_uri"),
		},
		Server: Server{
			RunAddress:  viper.GetString("run_address"),
			RateLimit:   viper.GetInt("rate_limit"),
			CORSOrigins: splitList(viper.GetString("cors_origins")),
		},
		Logger: Logger{
			LogLevel: viper.GetString("log_level"),
			LogFile:  viper.GetString("log_file"),
		},
		Events: Events{
			NatsURL:   viper.GetString("nats_url"),
			NatsToken: viper.GetString("nats_token"),
		},
		Browser: Browser{
			RemoteURL:       viper.GetString("chrome_url"),
			Bin:             viper.GetString("chrome_bin"),
			RecycleInterval: viper.GetDuration("browser_recycle_interval"),
		},
		Export: Export{
			DesignWidth: viper.GetInt("export_design_width"),
		},
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
