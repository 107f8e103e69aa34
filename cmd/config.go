package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/RATIU5/zaggonaut/internal/siteconfig"
)

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Prints the site configuration or one of its sections",
	Long: `The config command loads the configuration collection and prints it as
YAML. Pass "site" or "collections" to print a single section; "*" (the
default) prints everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := siteconfig.Wildcard
		if len(args) == 1 {
			key = siteconfig.Key(args[0])
		}
		_, cache, err := newBuilder()
		if err != nil {
			return err
		}
		return printConfig(cmd.Context(), cmd.OutOrStdout(), cache, key)
	},
}

func printConfig(ctx context.Context, w io.Writer, cache *siteconfig.Cache, key siteconfig.Key) error {
	v, err := cache.Get(ctx, key)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
}
