package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hilyafadhilah/tubes-basdat/internal/config"
	"github.com/hilyafadhilah/tubes-basdat/template"
	"github.com/spf13/cobra"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
	initForce      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new project",
	Long: `
Creates tubes.config.json, db/schema.sql with the DDL of every generated
table and a .env.example for the target database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.MySQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
}

func initializeProject(dbType template.DatabaseType) error {
	tmpl := template.NewProjectTemplate(dbType)

	for _, dir := range tmpl.GetDirectoryStructure() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := []struct {
		path    string
		content string
	}{
		{config.FileName, tmpl.GetConfig()},
		{filepath.Join("db", "schema.sql"), tmpl.GetSchema()},
		{".env.example", tmpl.GetEnvTemplate()},
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !initForce {
			warn("⚠️  %s already exists, skipping", f.path)
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		success("✅ Created %s", f.path)
	}

	info("\n📝 Next steps:")
	detail("  1. Put the reference tables (provinsi, kota, penyakit, pekerjaan, vaksin) in data/")
	detail("  2. Copy .env.example to .env and set DATABASE_URL")
	detail("  3. Run 'tubes generate'")
	return nil
}
