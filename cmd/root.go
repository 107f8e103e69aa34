package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RATIU5/zaggonaut/internal/config"
	"github.com/RATIU5/zaggonaut/internal/content"
	"github.com/RATIU5/zaggonaut/internal/logger"
	"github.com/RATIU5/zaggonaut/internal/site"
	"github.com/RATIU5/zaggonaut/internal/siteconfig"
)

var (
	cfgFile   string
	appConfig config.Config
	log       logger.Logger = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "zaggonaut",
	Short: "Build the zaggonaut portfolio site",
	Long: `zaggonaut reads the blog posts and projects under src/pages, the site
configuration under src/content/configuration, and renders them through
the layouts into a static site.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logger.Flush(log); err != nil {
			fmt.Fprintf(os.Stderr, "flush log: %v\n", err)
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("content-dir", "", "site root containing src/pages and src/content")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	for key, value := range config.Defaults() {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ZAGGONAUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlag("contentDir", cmd.Root().PersistentFlags().Lookup("content-dir")); err != nil {
		return err
	}
	if err := v.BindPFlag("logLevel", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("output"); f != nil {
		if err := v.BindPFlag("outputDir", f); err != nil {
			return err
		}
	}

	configFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config file: %w", err)
		}
		configFound = false
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(logger.Config{Level: appConfig.LogLevel, Development: appConfig.LogDevelopment})
	if err != nil {
		return err
	}
	log = l
	if configFound {
		log.Debug("using config file", logger.String("path", v.ConfigFileUsed()))
	} else {
		log.Debug("no config file found, using defaults and environment")
	}
	return nil
}

// newBuilder wires a Builder with a fresh configuration cache, so every
// build sees the configuration collection as it is on disk.
func newBuilder() (*site.Builder, *siteconfig.Cache, error) {
	reader, err := content.NewReader(appConfig.ContentDir,
		content.WithLogger(log),
		content.WithConcurrency(appConfig.Concurrency),
	)
	if err != nil {
		return nil, nil, err
	}
	cache := siteconfig.NewCache(
		siteconfig.FileCollections{Root: reader.Root(), Log: log},
		siteconfig.WithCacheLogger(log),
	)
	return site.NewBuilder(appConfig, reader, cache, log), cache, nil
}
