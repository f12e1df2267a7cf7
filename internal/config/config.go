package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	UserCurrencies []string      `mapstructure:"user_currencies"`
	UserStocks     []string      `mapstructure:"user_stocks"`
	Source         SourceConfig  `mapstructure:"source"`
	Quotes         QuotesConfig  `mapstructure:"quotes"`
	Logging        LoggingConfig `mapstructure:"logging"`
	Reports        ReportsConfig `mapstructure:"reports"`
}

// SourceConfig defines where transactions are loaded from
type SourceConfig struct {
	Type            string `mapstructure:"type"` // "excel", "csv" or "sheets"
	Path            string `mapstructure:"path"`
	Sheet           string `mapstructure:"sheet"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
	CredentialsFile string `mapstructure:"credentials_file"`
	CredentialsEnv  string `mapstructure:"credentials_env"`
}

// QuotesConfig defines the currency and stock price providers
type QuotesConfig struct {
	CurrencyBaseURL   string        `mapstructure:"currency_base_url"`
	StockBaseURL      string        `mapstructure:"stock_base_url"`
	TargetCurrency    string        `mapstructure:"target_currency"`
	CurrencyAPIKeyEnv string        `mapstructure:"currency_api_key_env"`
	StockAPIKeyEnv    string        `mapstructure:"stock_api_key_env"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// LoggingConfig defines log level and per-component log files
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Dir     string `mapstructure:"dir"`
	Console bool   `mapstructure:"console"`
}

// ReportsConfig defines where generated reports are written
type ReportsConfig struct {
	Dir string `mapstructure:"dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.type", "excel")
	v.SetDefault("source.path", "data/operations.xlsx")
	v.SetDefault("source.credentials_env", "GOOGLE_SERVICE_ACCOUNT_JSON")
	v.SetDefault("quotes.currency_base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("quotes.stock_base_url", "https://www.alphavantage.co/query")
	v.SetDefault("quotes.target_currency", "RUB")
	v.SetDefault("quotes.currency_api_key_env", "API_KEY_CURRENCY")
	v.SetDefault("quotes.stock_api_key_env", "API_KEY_SP_500")
	v.SetDefault("quotes.timeout", "15s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("reports.dir", ".")
}

// LoadConfig loads configuration from file and environment variables.
// An empty path yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var problems []string

	switch c.Source.Type {
	case "excel", "csv":
		if c.Source.Path == "" {
			problems = append(problems, fmt.Sprintf("source.path is required for %s sources", c.Source.Type))
		}
	case "sheets":
		if c.Source.SpreadsheetID == "" {
			problems = append(problems, "source.spreadsheet_id is required for sheets sources")
		}
		if c.Source.CredentialsFile == "" && os.Getenv(c.Source.CredentialsEnv) == "" {
			problems = append(problems, "sheets sources need source.credentials_file or the "+c.Source.CredentialsEnv+" variable")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid source.type %q: must be one of excel, csv, sheets", c.Source.Type))
	}

	if c.Quotes.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid quotes.timeout %v: must be positive", c.Quotes.Timeout))
	}
	if len(c.UserCurrencies) > 0 && c.Quotes.TargetCurrency == "" {
		problems = append(problems, "quotes.target_currency is required when user_currencies is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// CurrencyAPIKey returns the exchange-rate API key from the environment
func (c *Config) CurrencyAPIKey() string {
	return os.Getenv(c.Quotes.CurrencyAPIKeyEnv)
}

// StockAPIKey returns the stock-quote API key from the environment
func (c *Config) StockAPIKey() string {
	return os.Getenv(c.Quotes.StockAPIKeyEnv)
}

// LoadEnv loads .env files into the process environment. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
