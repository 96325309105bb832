package main

import (
	"fmt"
	"os"

	"texglossary/internal/config"
	"texglossary/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath   string
	glossaryFile string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Append word entries to a TeX glossary",
	Long: `glossary appends \item blocks (word, part of speech, definition) to a
TeX glossary file and can undo the most recent one.

Run without arguments to open the terminal form.`,
	SilenceUsage: true,
	RunE:         runForm,
}

// formCmd opens the terminal form
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the terminal entry form",
	RunE:  runForm,
}

// guiCmd opens the desktop form
var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop entry form",
	RunE:  runGUI,
}

// serveCmd serves the form as an HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the entry form as a JSON HTTP API",
	RunE:  runServe,
}

// recentCmd prints the journal
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent glossary changes",
	Long: `Prints the newest appends and undos recorded in the journal database.

Example:
  glossary recent -n 20`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

// migrateCmd applies the journal schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply journal database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var recentLimit int

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default glossary.yaml)")
	rootCmd.PersistentFlags().StringVarP(&glossaryFile, "file", "f", "", "glossary file, overrides GLOSSARY_FILE")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "number of records to show (default 10)")

	rootCmd.AddCommand(formCmd, guiCmd, serveCmd, recentCmd, migrateCmd)
}

// loadConfig loads configuration and applies the command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if glossaryFile != "" {
		cfg.Glossary.Path = glossaryFile
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds a logger; interactive front-ends only log to a file
func newLogger(cfg *config.Config, interactive bool) (*zap.Logger, error) {
	if interactive {
		return logging.NewForTerminal(cfg.Log)
	}
	return logging.New(cfg.Log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
