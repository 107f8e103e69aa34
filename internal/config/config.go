package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/RATIU5/zaggonaut/internal/format"
)

// Config is the CLI configuration, bound from config.yaml, flags and
// ZAGGONAUT_* environment variables.
type Config struct {
	// RootURL prefixes canonical source URLs. Falls back to site.url from
	// the configuration collection when empty.
	RootURL        string `mapstructure:"rootURL"`
	ContentDir     string `mapstructure:"contentDir"`
	OutputDir      string `mapstructure:"outputDir"`
	LayoutsDir     string `mapstructure:"layoutsDir"`
	StaticDir      string `mapstructure:"staticDir"`
	Locale         string `mapstructure:"locale"`
	SummaryWords   int    `mapstructure:"summaryWords"`
	Concurrency    int    `mapstructure:"concurrency"`
	LogLevel       string `mapstructure:"logLevel"`
	LogDevelopment bool   `mapstructure:"logDevelopment"`
}

// Defaults are registered with viper before the config file is read.
func Defaults() map[string]any {
	return map[string]any{
		"rootURL":        "",
		"contentDir":     ".",
		"outputDir":      "dist",
		"layoutsDir":     "layouts",
		"staticDir":      "public",
		"locale":         "",
		"summaryWords":   format.DefaultShortDescriptionWords,
		"concurrency":    0,
		"logLevel":       "info",
		"logDevelopment": false,
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RootURL, is.URL),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.LayoutsDir, validation.Required),
		validation.Field(&c.SummaryWords, validation.Min(0)),
		validation.Field(&c.Concurrency, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
	)
}
