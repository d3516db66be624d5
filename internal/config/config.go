package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"PriceSentinel/internal/model"
)

// CategoryConfig is one row of the category table: how to recognize the category
// and how to price it. Rows are matched in file order.
type CategoryConfig struct {
	Name                 string   `yaml:"name"`
	Keywords             []string `yaml:"keywords"`
	model.CategoryPolicy `yaml:",inline"`
}

// ProviderConfig configures one advisory provider.
type ProviderConfig struct {
	Name    string `yaml:"name"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Config holds all application configuration.
type Config struct {
	Paths struct {
		OverviewCSV string `yaml:"overview_csv"`
		MappingCSV  string `yaml:"mapping_csv"`
		DataDir     string `yaml:"data_dir"`
		OutputCSV   string `yaml:"output_csv"`
		StateFile   string `yaml:"state_file"`
	} `yaml:"paths"`
	Pricing struct {
		PriceStep        float64              `yaml:"price_step"`
		DemandBase       float64              `yaml:"demand_base"`
		PriceCeiling     float64              `yaml:"price_ceiling"`
		ProfitElasticity float64              `yaml:"profit_elasticity"`
		DefaultCategory  string               `yaml:"default_category"`
		DefaultPolicy    model.CategoryPolicy `yaml:"default_policy"`
		Categories       []CategoryConfig     `yaml:"categories"`
	} `yaml:"pricing"`
	Advisory struct {
		Enabled        *bool            `yaml:"enabled"` // unset: on when any provider has a key
		TimeoutSeconds int              `yaml:"timeout_seconds"`
		Providers      []ProviderConfig `yaml:"providers"`
	} `yaml:"advisory"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: defaults and environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OVERVIEW_CSV"); v != "" {
		cfg.Paths.OverviewCSV = v
	}
	if v := os.Getenv("MAPPING_CSV"); v != "" {
		cfg.Paths.MappingCSV = v
	}
	if v := os.Getenv("OUTPUT_CSV"); v != "" {
		cfg.Paths.OutputCSV = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Paths.StateFile = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PRICING_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ADVISORY_ENABLED"); v != "" {
		enabled := v == "true" || v == "1"
		cfg.Advisory.Enabled = &enabled
	}

	// Defaults
	if cfg.Paths.OverviewCSV == "" {
		cfg.Paths.OverviewCSV = "Dzukou_Pricing_Overview_With_Names - Copy.csv"
	}
	if cfg.Paths.MappingCSV == "" {
		cfg.Paths.MappingCSV = "product_data_mapping.csv"
	}
	if cfg.Paths.OutputCSV == "" {
		cfg.Paths.OutputCSV = "recommended_prices.csv"
	}
	if cfg.Pricing.PriceStep == 0 {
		cfg.Pricing.PriceStep = 0.25
	}
	if cfg.Pricing.DemandBase == 0 {
		cfg.Pricing.DemandBase = 100
	}
	if cfg.Pricing.PriceCeiling == 0 {
		cfg.Pricing.PriceCeiling = 1000
	}
	if cfg.Pricing.ProfitElasticity == 0 {
		cfg.Pricing.ProfitElasticity = 1.2
	}
	if cfg.Advisory.TimeoutSeconds == 0 {
		cfg.Advisory.TimeoutSeconds = 10
	}
	if len(cfg.Advisory.Providers) == 0 {
		cfg.Advisory.Providers = []ProviderConfig{{Name: "mistral"}, {Name: "groq"}, {Name: "gemini"}}
	}
	applyProviderEnv(cfg.Advisory.Providers)

	return cfg, nil
}

// applyProviderEnv fills provider credentials from <NAME>_API_KEY and <NAME>_MODEL.
func applyProviderEnv(providers []ProviderConfig) {
	for i := range providers {
		prefix := strings.ToUpper(providers[i].Name)
		if v := os.Getenv(prefix + "_API_KEY"); v != "" {
			providers[i].APIKey = v
		}
		if v := os.Getenv(prefix + "_MODEL"); v != "" {
			providers[i].Model = v
		}
	}
}

// AdvisoryEnabled reports whether advisory lookups should run. Without an explicit
// advisory.enabled, they run as soon as any provider has an API key.
func (c *Config) AdvisoryEnabled() bool {
	if c.Advisory.Enabled != nil {
		return *c.Advisory.Enabled
	}
	for _, p := range c.Advisory.Providers {
		if p.APIKey != "" {
			return true
		}
	}
	return false
}

// AdvisoryTimeout is the per-provider request bound.
func (c *Config) AdvisoryTimeout() time.Duration {
	return time.Duration(c.Advisory.TimeoutSeconds) * time.Second
}

// Validate checks that all required fields are set and pricing parameters are sane.
func (c *Config) Validate() error {
	if c.Paths.OverviewCSV == "" {
		return fmt.Errorf("paths.overview_csv is required")
	}
	if c.Paths.MappingCSV == "" {
		return fmt.Errorf("paths.mapping_csv is required")
	}
	if c.Pricing.PriceStep <= 0 {
		return fmt.Errorf("pricing.price_step must be positive")
	}
	if c.Pricing.DemandBase <= 0 {
		return fmt.Errorf("pricing.demand_base must be positive")
	}
	if c.Pricing.PriceCeiling <= 0 {
		return fmt.Errorf("pricing.price_ceiling must be positive")
	}
	if c.Pricing.ProfitElasticity <= 0 {
		return fmt.Errorf("pricing.profit_elasticity must be positive")
	}
	if c.Pricing.DefaultPolicy != (model.CategoryPolicy{}) {
		if err := validatePolicy("pricing.default_policy", c.Pricing.DefaultPolicy); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(c.Pricing.Categories))
	for i, cat := range c.Pricing.Categories {
		if cat.Name == "" {
			return fmt.Errorf("pricing.categories[%d].name is required", i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("pricing.categories: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		if err := validatePolicy(fmt.Sprintf("pricing.categories[%s]", cat.Name), cat.CategoryPolicy); err != nil {
			return err
		}
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if c.Advisory.TimeoutSeconds < 0 {
		return fmt.Errorf("advisory.timeout_seconds must not be negative")
	}
	return nil
}

func validatePolicy(field string, p model.CategoryPolicy) error {
	if p.Margin < 0 {
		return fmt.Errorf("%s.margin must not be negative", field)
	}
	if p.Elasticity <= 0 {
		return fmt.Errorf("%s.elasticity must be positive", field)
	}
	if p.MaxMarkup <= 0 {
		return fmt.Errorf("%s.max_markup must be positive", field)
	}
	return nil
}
