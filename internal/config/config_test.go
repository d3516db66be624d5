package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
paths:
  overview_csv: data/overview.csv
  mapping_csv: data/mapping.csv
  output_csv: out/recommended.csv
pricing:
  price_step: 0.5
  default_category: Other scarves and shawls
  default_policy: {margin: 0.15, elasticity: 1.2, max_markup: 1.8}
  categories:
    - name: Sunglasses
      keywords: [sunglasses]
      margin: 0.15
      elasticity: 1.3
      max_markup: 1.8
    - name: Towels
      margin: 0.15
      elasticity: 1.0
      max_markup: 1.5
advisory:
  enabled: true
  providers:
    - name: groq
      model: llama-3.1-8b-instant
    - name: mistral
schedule:
  cron: "0 0 6 * * 1"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-key")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/overview.csv", cfg.Paths.OverviewCSV)
	assert.Equal(t, 0.5, cfg.Pricing.PriceStep)
	assert.Equal(t, 100.0, cfg.Pricing.DemandBase)
	assert.Equal(t, 1000.0, cfg.Pricing.PriceCeiling)
	assert.Equal(t, 1.2, cfg.Pricing.ProfitElasticity)

	require.Len(t, cfg.Pricing.Categories, 2)
	sg := cfg.Pricing.Categories[0]
	assert.Equal(t, "Sunglasses", sg.Name)
	assert.Equal(t, []string{"sunglasses"}, sg.Keywords)
	assert.Equal(t, 1.3, sg.Elasticity)
	assert.Empty(t, cfg.Pricing.Categories[1].Keywords)

	assert.True(t, cfg.AdvisoryEnabled())
	assert.Equal(t, 10*time.Second, cfg.AdvisoryTimeout())
	require.Len(t, cfg.Advisory.Providers, 2)
	assert.Equal(t, ProviderConfig{Name: "groq", APIKey: "groq-key", Model: "llama-3.1-8b-instant"}, cfg.Advisory.Providers[0])
	assert.Equal(t, "0 0 6 * * 1", cfg.Schedule.Cron)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "m-key")
	t.Setenv("SQLITE_PATH", "/tmp/pricing.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "product_data_mapping.csv", cfg.Paths.MappingCSV)
	assert.Equal(t, "recommended_prices.csv", cfg.Paths.OutputCSV)
	assert.Equal(t, 0.25, cfg.Pricing.PriceStep)
	assert.Equal(t, "/tmp/pricing.db", cfg.Database.SQLitePath)
	// No explicit switch: a provider key is enough to enable advisory.
	assert.Nil(t, cfg.Advisory.Enabled)
	assert.True(t, cfg.AdvisoryEnabled())

	names := make([]string, 0, len(cfg.Advisory.Providers))
	for _, p := range cfg.Advisory.Providers {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"mistral", "groq", "gemini"}, names)
	assert.Equal(t, "m-key", cfg.Advisory.Providers[0].APIKey)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "pricing: [unclosed"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"negative step", func(c *Config) { c.Pricing.PriceStep = -1 }, "price_step"},
		{"unnamed category", func(c *Config) {
			c.Pricing.Categories = append(c.Pricing.Categories, CategoryConfig{})
		}, "name is required"},
		{"duplicate category", func(c *Config) {
			c.Pricing.Categories = append(c.Pricing.Categories, c.Pricing.Categories[0])
		}, "duplicate"},
		{"zero elasticity", func(c *Config) { c.Pricing.Categories[0].Elasticity = 0 }, "elasticity"},
		{"bad default policy", func(c *Config) { c.Pricing.DefaultPolicy.MaxMarkup = -1 }, "max_markup"},
		{"negative profit elasticity", func(c *Config) { c.Pricing.ProfitElasticity = -1 }, "profit_elasticity"},
		{"telegram without chat", func(c *Config) { c.Telegram.BotToken = "t" }, "chat_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleYAML))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestAdvisoryEnabled(t *testing.T) {
	for _, key := range []string{"MISTRAL_API_KEY", "GROQ_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("ADVISORY_ENABLED", "")
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.AdvisoryEnabled(), "no keys, no switch")

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.AdvisoryEnabled(), "key present")

	t.Setenv("ADVISORY_ENABLED", "false")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.AdvisoryEnabled(), "explicitly disabled")

	cfg, err = Load(writeConfig(t, "advisory:\n  enabled: true\n"))
	require.NoError(t, err)
	assert.False(t, cfg.AdvisoryEnabled(), "env switch wins over file")
}
