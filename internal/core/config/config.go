package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSheets   = "sheets"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	AppHost        string
	LogLevel       string
	RequestTimeout time.Duration

	StoreDriver string

	SpreadsheetID       string
	CredentialsJSON     string
	CredentialsFile     string
	SheetsRetryAttempts uint

	DatabaseURL   string
	MigrationsDir string

	JWTSecret string
	JWTTTL    time.Duration

	AttendanceSheet string
}

// LoadConfig reads .env when present without overriding variables already
// set in the environment, then resolves every setting through viper.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_HOST", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("STORE_DRIVER", DriverSheets)
	v.SetDefault("SHEETS_RETRY_ATTEMPTS", 5)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("JWT_TTL", "8h")
	v.SetDefault("ATTENDANCE_SHEET", "odata")
	v.AutomaticEnv()

	config := &Config{
		AppHost:             v.GetString("APP_HOST"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		RequestTimeout:      v.GetDuration("REQUEST_TIMEOUT"),
		StoreDriver:         strings.ToLower(v.GetString("STORE_DRIVER")),
		SpreadsheetID:       v.GetString("SPREADSHEET_ID"),
		CredentialsJSON:     v.GetString("GOOGLE_SHEETS_CREDENTIALS_JSON"),
		CredentialsFile:     v.GetString("GOOGLE_SHEETS_CREDENTIALS_FILE"),
		SheetsRetryAttempts: v.GetUint("SHEETS_RETRY_ATTEMPTS"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		MigrationsDir:       v.GetString("MIGRATIONS_DIR"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTTTL:              v.GetDuration("JWT_TTL"),
		AttendanceSheet:     v.GetString("ATTENDANCE_SHEET"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required for the %s store", DriverSheets)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q, expected one of %s, %s, %s", c.StoreDriver, DriverSheets, DriverPostgres, DriverMemory)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}
