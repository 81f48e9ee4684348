package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hilyafadhilah/tubes-basdat/internal/config"
	"github.com/hilyafadhilah/tubes-basdat/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════╗",
		"║   ████████╗██╗   ██╗██████╗ ███████╗███████╗     ║",
		"║   ╚══██╔══╝██║   ██║██╔══██╗██╔════╝██╔════╝     ║",
		"║      ██║   ██║   ██║██████╔╝█████╗  ███████╗     ║",
		"║      ██║   ██║   ██║██╔══██╗██╔══╝  ╚════██║     ║",
		"║      ██║   ╚██████╔╝██████╔╝███████╗███████║     ║",
		"║      ╚═╝    ╚═════╝ ╚═════╝ ╚══════╝╚══════╝     ║",
		"║                                                  ║",
		"║      💉 Vaccination Logistics Data Generator      ║",
		"╚══════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Fprintln(os.Stderr, line)
	}

	fmt.Fprint(os.Stderr, "                 ")
	color.New(color.FgCyan, color.Bold).Fprint(os.Stderr, "Version: ")
	color.New(color.FgYellow, color.Bold).Fprintf(os.Stderr, "%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "tubes",
	Short: "Generate a synthetic vaccination logistics database",
	Long: `
tubes synthesizes a referentially consistent dataset for a vaccination
logistics schema: regions, citizens, health facilities, vaccine batches
with their shipment history and the doses given to every citizen.

Every table is written as a delimited text file together with the bulk
load statement that imports it.

Database Support:
- MySQL / MariaDB (LOAD DATA LOCAL INFILE)
- PostgreSQL (COPY)
- SQLite (row inserts)`,
	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("tubes version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Fprintln(os.Stderr)
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tubes.config.json)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every stage at debug level")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("tubes.config")
	}

	viper.SetEnvPrefix("TUBES")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		warn("⚠️  Could not read %s: %v", cfgFile, err)
	}
}

// loadConfig loads and validates the configuration and builds the logger
// every command shares.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}
