package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hilyafadhilah/tubes-basdat/internal/database"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/spf13/cobra"
)

var (
	loadDir      string
	loadProvider string
	loadSchema   string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import a generated run into a database",
	Long: `
Connects to the database named by the url_env environment variable and
imports every table of <dir>/manifest.yaml in load order.

MySQL receives LOAD DATA LOCAL INFILE, PostgreSQL receives COPY FROM STDIN
and SQLite receives row inserts. A schema script, when given, runs first.

Examples:
  tubes load
  tubes load --provider postgresql --schema db/schema.sql`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		dir := cfg.OutputDir
		if loadDir != "" {
			dir = loadDir
		}
		provider := cfg.Database.Provider
		if loadProvider != "" {
			provider = loadProvider
		}
		schema := cfg.Database.Schema
		if loadSchema != "" {
			schema = loadSchema
		}

		manifest, err := writer.ReadManifest(dir)
		if err != nil {
			return err
		}
		if err := manifest.Verify(); err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		l, err := database.NewLoader(provider, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := l.Connect(ctx, dbURL); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer l.Close()

		if err := l.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if schema != "" {
			script, err := os.ReadFile(schema)
			if err != nil {
				return fmt.Errorf("failed to read schema: %w", err)
			}
			info("📐 Applying schema %s...", schema)
			if err := l.Exec(ctx, string(script)); err != nil {
				return err
			}
		}

		info("🚚 Loading %d tables from %s...", len(manifest.Tables), dir)
		loaded, err := l.Load(ctx, manifest)
		if err != nil {
			return err
		}

		for _, t := range manifest.Tables {
			detail("  %-18s %7d rows", t.Name, loaded[t.Name])
		}
		success("✅ Loaded run %s into %s", manifest.RunID, provider)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadDir, "dir", "", "Directory of a previous run (default: output_dir)")
	loadCmd.Flags().StringVarP(&loadProvider, "provider", "p", "", "Database provider: mysql, postgresql or sqlite")
	loadCmd.Flags().StringVar(&loadSchema, "schema", "", "SQL script to run before loading")
}
