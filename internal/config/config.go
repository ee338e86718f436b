package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Facebook   Facebook   `mapstructure:",squash"`
	Frontend   Frontend   `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Credits    Credits    `mapstructure:",squash"`
	Storage    Storage    `mapstructure:",squash"`
	Completion Completion `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN            string `mapstructure:"-"`
	Driver         string `mapstructure:"database_driver"`
	Password       string `mapstructure:"database_password"`
	URL            string `mapstructure:"database_url"`
	User           string `mapstructure:"database_user"`
	MigrateOnStart bool   `mapstructure:"database_migrate_on_start"`
}

type Facebook struct {
	BaseURL     string `mapstructure:"facebook_base_url"`
	DialogURL   string `mapstructure:"facebook_dialog_url"`
	Version     string `mapstructure:"facebook_version"`
	URL         string `mapstructure:"-"`
	AppID       string `mapstructure:"facebook_app_id"`
	AppSecret   string `mapstructure:"facebook_app_secret"`
	AccessToken string `mapstructure:"facebook_access_token"`
	AdAccountID string `mapstructure:"facebook_ad_account_id"`
}

type Frontend struct {
	BaseURL string `mapstructure:"frontend_url"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Credits struct {
	WelcomeBonus        int `mapstructure:"credits_welcome_bonus"`
	PricePerCreditCents int `mapstructure:"credits_price_per_credit_cents"`
}

type Storage struct {
	CreativesDir string `mapstructure:"storage_creatives_dir"`
}

type Completion struct {
	CronSchedule string `mapstructure:"campaign_completion_cron"`
	Enabled      bool   `mapstructure:"campaign_completion_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaigns?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MIGRATE_ON_START", true)

	viper.SetDefault("FACEBOOK_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("FACEBOOK_DIALOG_URL", "https://www.facebook.com")
	viper.SetDefault("FACEBOOK_VERSION", "v17.0")
	viper.SetDefault("FACEBOOK_APP_ID", "")
	viper.SetDefault("FACEBOOK_APP_SECRET", "")
	viper.SetDefault("FACEBOOK_ACCESS_TOKEN", "") // token de sistema, usado como fallback
	viper.SetDefault("FACEBOOK_AD_ACCOUNT_ID", "")

	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("CREDITS_WELCOME_BONUS", 1)
	viper.SetDefault("CREDITS_PRICE_PER_CREDIT_CENTS", 500)

	viper.SetDefault("STORAGE_CREATIVES_DIR", "./storage/creatives")

	viper.SetDefault("CAMPAIGN_COMPLETION_CRON", "0 1 * * *") // Todos os dias à 1h da manhã
	viper.SetDefault("CAMPAIGN_COMPLETION_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Facebook.URL = fmt.Sprintf("%s/%s", config.Facebook.BaseURL, config.Facebook.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate falha cedo quando uma configuração obrigatória está ausente.
// Sem isso os fluxos de OAuth e lançamento quebrariam só em tempo de
// requisição, com erros difíceis de rastrear.
func (c *Config) Validate() error {
	if c.Facebook.AppID == "" {
		return errors.New("FACEBOOK_APP_ID é obrigatório")
	}

	if c.Facebook.AppSecret == "" {
		return errors.New("FACEBOOK_APP_SECRET é obrigatório")
	}

	if c.Auth.Secret == "" {
		return errors.New("AUTH_SECRET é obrigatório")
	}

	if c.Frontend.BaseURL == "" {
		return errors.New("FRONTEND_URL é obrigatório")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
