package cmd

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads the configuration collection, reads every blog
post and project under src/pages, renders them through the layouts
(single.html per item, list.html per content type), copies the static
directory and writes index.json into the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, err := newBuilder()
		if err != nil {
			return err
		}
		_, err = b.Build(cmd.Context())
		return err
	},
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (default is ./dist)")
	rootCmd.AddCommand(buildCmd)
}
