package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	RunAddress       string          `env:"RUN_ADDRESS"`
	DatabaseDSN      string          `env:"DATABASE_URI"`
	MigrationsDir    string          `env:"MIGRATIONS_DIR"`
	JWTSecret        string          `env:"JWT_SECRET"`
	RoundDuration    time.Duration   `env:"ROUND_DURATION"`
	PayoutMultiplier decimal.Decimal `env:"PAYOUT_MULTIPLIER"`
	StartingBalance  decimal.Decimal `env:"STARTING_BALANCE"`
	AutoDraw         bool            `env:"AUTO_DRAW"`
	AutoDrawInterval time.Duration   `env:"AUTO_DRAW_INTERVAL"`
	AdminUsername    string          `env:"ADMIN_USERNAME"`
	AdminPassword    string          `env:"ADMIN_PASSWORD"`
	RedisAddr        string          `env:"REDIS_ADDR"`
	RedisPassword    string          `env:"REDIS_PASSWORD"`
	RedisDB          int             `env:"REDIS_DB"`
	NATSURL          string          `env:"NATS_URL"`
	LogLevel         string          `env:"LOG_LEVEL"`
}

// UsesMemoryStore сообщает, что DSN не задан и данные хранятся в памяти процесса.
func (c *Config) UsesMemoryStore() bool {
	return c.DatabaseDSN == ""
}

// LoadConfig собирает конфигурацию.
//
// Алгоритм работы:
//  1. Загружает переменные из файла .env, если он есть. Уже заданные переменные окружения не перезаписываются.
//  2. Разбирает флаги args, флаги задают значения по умолчанию.
//  3. Поверх флагов применяет переменные окружения.
//  4. Проверяет итоговую конфигурацию.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %s", err.Error())
	}

	var conf Config
	if err := loadFlags(&conf, args); err != nil {
		return nil, fmt.Errorf("parse flags: %s", err.Error())
	}

	if envParseErr := env.Parse(&conf); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func MustLoadConfig(args []string) *Config {
	config, err := LoadConfig(args)
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	flags := flag.NewFlagSet("luckyten", flag.ContinueOnError)

	flags.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flags.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN, empty to keep data in memory")
	flags.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flags.StringVar(&flagConfig.JWTSecret, "j", "", "JWT signing secret")
	flags.DurationVar(&flagConfig.RoundDuration, "round", 5*time.Minute, "Round duration")
	flags.TextVar(&flagConfig.PayoutMultiplier, "payout", decimal.NewFromInt(9), "Total return multiplier of a winning bet")
	flags.TextVar(&flagConfig.StartingBalance, "balance", decimal.RequireFromString("100.00"), "Starting wallet balance")
	flags.BoolVar(&flagConfig.AutoDraw, "auto", true, "Draw expired rounds automatically")
	flags.DurationVar(&flagConfig.AutoDrawInterval, "auto-interval", 5*time.Second, "Auto draw check interval")
	flags.StringVar(&flagConfig.AdminUsername, "admin", "", "Admin username created on startup")
	flags.StringVar(&flagConfig.AdminPassword, "admin-password", "", "Admin password")
	flags.StringVar(&flagConfig.RedisAddr, "redis", "", "Redis address, empty to disable the round cache")
	flags.StringVar(&flagConfig.NATSURL, "nats", "", "NATS url, empty to disable event publishing")
	flags.StringVar(&flagConfig.LogLevel, "log-level", "", "Log level, empty for the environment default")

	return flags.Parse(args) //nolint:wrapcheck
}

func (c *Config) validate() error {
	switch {
	case c.JWTSecret == "":
		return errors.New("jwt secret is not set")
	case c.RoundDuration <= 0:
		return errors.New("round duration must be positive")
	case c.PayoutMultiplier.LessThanOrEqual(decimal.NewFromInt(1)):
		return errors.New("payout multiplier must be greater than 1")
	case !c.PayoutMultiplier.IsInteger():
		return errors.New("payout multiplier must be a whole number")
	case c.StartingBalance.IsNegative():
		return errors.New("starting balance must not be negative")
	case c.AutoDrawInterval <= 0:
		return errors.New("auto draw interval must be positive")
	case (c.AdminUsername == "") != (c.AdminPassword == ""):
		return errors.New("admin username and password must be set together")
	}
	return nil
}
