package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DatabaseDriverMemory   = "memory"
	DatabaseDriverPostgres = "postgres"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Feed           Feed           `mapstructure:",squash"`
	Latency        Latency        `mapstructure:",squash"`
	ReportSnapshot ReportSnapshot `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Auth descreve o único usuário administrador do painel
type Auth struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
}

type Feed struct {
	Source  string        `mapstructure:"feed_source"`
	Timeout time.Duration `mapstructure:"feed_timeout"`
}

// Latency controla o atraso simulado de cada operação do painel
type Latency struct {
	Enabled    bool          `mapstructure:"simulate_latency"`
	List       time.Duration `mapstructure:"latency_list"`
	DailySales time.Duration `mapstructure:"latency_daily_sales"`
	TopClients time.Duration `mapstructure:"latency_top_clients"`
	Create     time.Duration `mapstructure:"latency_create"`
	Update     time.Duration `mapstructure:"latency_update"`
	Delete     time.Duration `mapstructure:"latency_delete"`
}

type ReportSnapshot struct {
	CronSchedule string `mapstructure:"report_snapshot_cron"`
	Enabled      bool   `mapstructure:"report_snapshot_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", DatabaseDriverMemory)
	viper.SetDefault("DATABASE_URL", "localhost:5432/toystore?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("ADMIN_EMAIL", "admin@toystore.com")
	viper.SetDefault("ADMIN_PASSWORD", "123456") // ONLY LOCAL
	viper.SetDefault("ADMIN_NAME", "Administrador")

	// Vazio usa o feed padrão embutido na aplicação
	viper.SetDefault("FEED_SOURCE", "")
	viper.SetDefault("FEED_TIMEOUT", "30s")

	// Atrasos do painel original, desligados por padrão
	viper.SetDefault("SIMULATE_LATENCY", false)
	viper.SetDefault("LATENCY_LIST", "800ms")
	viper.SetDefault("LATENCY_DAILY_SALES", "600ms")
	viper.SetDefault("LATENCY_TOP_CLIENTS", "700ms")
	viper.SetDefault("LATENCY_CREATE", "800ms")
	viper.SetDefault("LATENCY_UPDATE", "800ms")
	viper.SetDefault("LATENCY_DELETE", "600ms")

	viper.SetDefault("REPORT_SNAPSHOT_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("REPORT_SNAPSHOT_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica combinações de configuração que impedem a aplicação de subir
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DatabaseDriverMemory, DatabaseDriverPostgres:
	default:
		return fmt.Errorf("config: driver de banco de dados inválido: %q", c.Database.Driver)
	}

	if c.Auth.AdminEmail == "" || c.Auth.AdminPassword == "" {
		return fmt.Errorf("config: email e senha do administrador são obrigatórios")
	}

	if c.SecretKey == "" {
		return fmt.Errorf("config: secret_key é obrigatório")
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
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
