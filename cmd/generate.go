package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hilyafadhilah/tubes-basdat/internal/loader"
	"github.com/hilyafadhilah/tubes-basdat/internal/reference"
	"github.com/hilyafadhilah/tubes-basdat/internal/seeder"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	genCitizens int
	genInput    string
	genOutput   string
	genDialect  string
	genQuiet    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize the dataset and write every table",
	Long: `
Loads the reference tables from the input directory, synthesizes citizens,
facilities, vaccine batches and vaccinations, verifies every relational
invariant and writes one file per table to the output directory.

The bulk load statement of each table is printed to stdout as soon as the
table is written and collected in <output>/load.sql.

Examples:
  tubes generate
  tubes generate --citizens 500 --out /tmp/result
  tubes generate --dialect postgresql --quiet`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCitizens, "citizens", "n", 0, "Number of citizens (overrides config)")
	generateCmd.Flags().StringVarP(&genInput, "input", "i", "", "Reference table directory (overrides config)")
	generateCmd.Flags().StringVarP(&genOutput, "out", "o", "", "Output directory (overrides config)")
	generateCmd.Flags().StringVarP(&genDialect, "dialect", "d", "", "Loader dialect: mysql or postgresql (overrides config)")
	generateCmd.Flags().BoolVarP(&genQuiet, "quiet", "q", false, "Do not print directives to stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	if genInput != "" {
		cfg.InputDir = genInput
	}
	if genOutput != "" {
		cfg.OutputDir = genOutput
	}
	if genDialect != "" {
		cfg.Dialect = genDialect
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	dialect, err := loader.ByName(cfg.Dialect)
	if err != nil {
		return err
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	if genCitizens > 0 {
		params.Citizens = genCitizens
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	info("📖 Loading reference tables from %s...", cfg.InputDir)
	bundle, err := reference.LoadAll(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("failed to load reference tables: %w", err)
	}
	detail("  %d provinces, %d cities, %d conditions, %d jobs, %d vaccines",
		len(bundle.Provinces), len(bundle.Cities), len(bundle.Conditions), len(bundle.Jobs), len(bundle.Vaccines))

	synth, err := seeder.NewSynthesizer(params, seeder.NewDataGenerator(), log)
	if err != nil {
		return err
	}

	info("🔨 Synthesizing %d citizens...", params.Citizens)
	ds, err := synth.Run(ctx, bundle)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	var sink io.Writer = os.Stdout
	if genQuiet {
		sink = io.Discard
	}
	w, err := writer.New(cfg.OutputDir, cfg.Encoding, dialect, writer.WithSink(sink), writer.WithLogger(log))
	if err != nil {
		return err
	}

	tables := ds.Tables()
	info("💾 Writing %d tables to %s...", len(tables), cfg.OutputDir)
	manifest, err := w.WriteAll(ctx, tables)
	if err != nil {
		return fmt.Errorf("failed to write tables: %w", err)
	}

	total := 0
	for _, t := range manifest.Tables {
		total += t.Rows
		detail("  %-18s %7d rows", t.Name, t.Rows)
	}
	log.Info("generate finished", zap.String("run_id", manifest.RunID), zap.Int("rows", total))

	success("✅ Wrote %d rows across %d tables (run %s)", total, len(manifest.Tables), manifest.RunID)
	info("\n📝 Next steps:")
	detail("  1. Run the statements in %s against your database", "load.sql")
	detail("  2. Or run 'tubes load' to import the tables directly")
	return nil
}
