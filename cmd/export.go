package cmd

import (
	"github.com/hilyafadhilah/tubes-basdat/internal/export"
	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
	"github.com/spf13/cobra"
)

var (
	exportDir string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a generated run",
	Long: `
Decodes every table of a previous run and exports it.
Supported formats: json (default), xlsx

Examples:
  tubes export
  tubes export --xlsx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.OutputDir
		if exportDir != "" {
			dir = exportDir
		}

		format := "json"
		if xlsx, _ := cmd.Flags().GetBool("xlsx"); xlsx {
			format = "xlsx"
		} else if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
			format = "json"
		}

		manifest, err := writer.ReadManifest(dir)
		if err != nil {
			return err
		}
		if err := manifest.Verify(); err != nil {
			return err
		}

		target := cfg.ExportPath
		if exportOut != "" {
			target = exportOut
		}

		exportPath, err := export.PerformExport(manifest, target, format)
		if err != nil {
			return err
		}

		success("✅ Export completed: %s", exportPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Directory of a previous run (default: output_dir)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Directory for the export file (default: export_path)")
	exportCmd.Flags().BoolP("json", "j", false, "Export as JSON (default)")
	exportCmd.Flags().BoolP("xlsx", "x", false, "Export as an Excel workbook")
}
