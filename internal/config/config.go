package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

type Config struct {
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

// AuthConfig keeps the token lifetime and the cookie lifetime apart; the
// browser drops the cookie before the token it carries expires.
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLHours     int    `toml:"token_ttl_hours"`
	CookieName        string `toml:"cookie_name"`
	CookieMaxAgeHours int    `toml:"cookie_max_age_hours"`
	CookieSecure      bool   `toml:"cookie_secure"`
	PasswordAlgorithm string `toml:"password_algorithm"`
	BcryptCost        int    `toml:"bcrypt_cost"`
}

type DatabaseConfig struct {
	Driver     string `toml:"driver"`
	SQLitePath string `toml:"sqlite_path"`

	MySQLHost     string `toml:"mysql_host"`
	MySQLPort     int    `toml:"mysql_port"`
	MySQLUser     string `toml:"mysql_user"`
	MySQLPassword string `toml:"mysql_password"`
	MySQLDB       string `toml:"mysql_db"`
	MySQLParams   string `toml:"mysql_params"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Load() (*Config, error) {
	cfg := Default()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	// .env never overrides variables already present in the process environment.
	envFile := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("database.sqlite_path is required for the sqlite driver")
		}
	case DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.TokenTTLHours <= 0 || c.Auth.CookieMaxAgeHours <= 0 {
		return errors.New("token and cookie lifetimes must be positive")
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

func (c *Config) CookieMaxAge() time.Duration {
	return time.Duration(c.Auth.CookieMaxAgeHours) * time.Hour
}

func (c *Config) IsDebug() bool {
	return c.App.GinMode == "debug"
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.Database.MySQLUser,
		c.Database.MySQLPassword,
		c.Database.MySQLHost,
		c.Database.MySQLPort,
		c.Database.MySQLDB,
		c.Database.MySQLParams,
	)
}

// Default returns the built-in configuration. JWTSecret is left empty; a
// deployment that never sets one fails Validate.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "gopherblog",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    3000,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			TokenTTLHours:     60,
			CookieName:        "gopherblog_session",
			CookieMaxAgeHours: 24,
			CookieSecure:      true,
			PasswordAlgorithm: "bcrypt",
			BcryptCost:        10,
		},
		Database: DatabaseConfig{
			Driver:      DriverSQLite,
			SQLitePath:  "data/gopherblog.db",
			MySQLHost:   "127.0.0.1",
			MySQLPort:   3306,
			MySQLUser:   "root",
			MySQLDB:     "gopherblog",
			MySQLParams: "parseTime=true&loc=Local&charset=utf8mb4",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTLHours = getEnvAsInt("TOKEN_TTL_HOURS", cfg.Auth.TokenTTLHours)
	cfg.Auth.CookieName = getEnv("COOKIE_NAME", cfg.Auth.CookieName)
	cfg.Auth.CookieMaxAgeHours = getEnvAsInt("COOKIE_MAX_AGE_HOURS", cfg.Auth.CookieMaxAgeHours)
	cfg.Auth.CookieSecure = getEnvAsBool("COOKIE_SECURE", cfg.Auth.CookieSecure)
	cfg.Auth.PasswordAlgorithm = getEnv("PASSWORD_ALGORITHM", cfg.Auth.PasswordAlgorithm)
	cfg.Auth.BcryptCost = getEnvAsInt("BCRYPT_COST", cfg.Auth.BcryptCost)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.SQLitePath = getEnv("SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Database.MySQLHost = getEnv("MYSQL_HOST", cfg.Database.MySQLHost)
	cfg.Database.MySQLPort = getEnvAsInt("MYSQL_PORT", cfg.Database.MySQLPort)
	cfg.Database.MySQLUser = getEnv("MYSQL_USER", cfg.Database.MySQLUser)
	cfg.Database.MySQLPassword = getEnv("MYSQL_PASSWORD", cfg.Database.MySQLPassword)
	cfg.Database.MySQLDB = getEnv("MYSQL_DB", cfg.Database.MySQLDB)
	cfg.Database.MySQLParams = getEnv("MYSQL_PARAMS", cfg.Database.MySQLParams)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
