package cli

import (
	"github.com/spf13/cobra"

	"github.com/VyankateshD206/aiobs/internal/config"
	"github.com/VyankateshD206/aiobs/internal/logger"
)

const version = "0.1.0"

var (
	cfgFile  string
	logLevel string

	// cfg is loaded by setup before any subcommand runs.
	cfg       *config.Config
	appLogger *logger.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aiobs",
	Short: "aiobs - LLM observability toolkit",
	Long: `aiobs records LLM provider calls as structured, timestamped events
and exports them as JSON artifacts. This CLI inspects, validates, and
watches those artifacts.`,
	Version:           version,
	PersistentPreRunE: setup,
}

// setup loads the configuration and initializes logging for every
// subcommand. The --log-level flag overrides the configured level only
// when it was set on the command line.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if cmd.Root().PersistentFlags().Changed("log-level") {
		loaded.Logging.Level = logLevel
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logger.New(logger.Config{
		Level:   loaded.Logging.Level,
		File:    loaded.Logging.File,
		Console: loaded.Logging.Console,
		Pretty:  loaded.Logging.Pretty,
	})
	if err != nil {
		return err
	}

	if appLogger != nil {
		appLogger.Close()
	}
	appLogger = l
	cfg = loaded
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if appLogger != nil {
		appLogger.Close()
		appLogger = nil
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.aiobs/aiobs.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}
