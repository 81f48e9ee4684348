package cmd

import (
	"fmt"
	"os"

	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/spf13/cobra"
)

var (
	directivesDir     string
	directivesDialect string
)

var directivesCmd = &cobra.Command{
	Use:   "directives",
	Short: "Print the load statements of a previous run",
	Long: `
Reads <dir>/manifest.yaml and prints one bulk load statement per table, in
load order. The dialect defaults to the one the run was generated with.

Examples:
  tubes directives
  tubes directives --dialect postgresql > copy.sql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.OutputDir
		if directivesDir != "" {
			dir = directivesDir
		}

		manifest, err := writer.ReadManifest(dir)
		if err != nil {
			return err
		}

		name := manifest.Dialect
		if directivesDialect != "" {
			name = directivesDialect
		}
		dialect, err := loader.ByName(name)
		if err != nil {
			return err
		}

		if err := writer.EmitDirectives(manifest, dialect, os.Stdout); err != nil {
			return fmt.Errorf("failed to emit directives: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(directivesCmd)

	directivesCmd.Flags().StringVar(&directivesDir, "dir", "", "Directory of a previous run (default: output_dir)")
	directivesCmd.Flags().StringVarP(&directivesDialect, "dialect", "d", "", "Loader dialect: mysql or postgresql")
}
