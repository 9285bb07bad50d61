// Package cli implements the expman command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LaurentVidal95/LocalMLManager/internal/config"
	"github.com/LaurentVidal95/LocalMLManager/internal/db"
	"github.com/LaurentVidal95/LocalMLManager/internal/logging"
)

var (
	// Global flags
	cfgFile    string
	jsonOutput bool
	verbose    bool
	noColor    bool
	logLevel   string
	expRoot    string

	// Global config loader and config
	configLoader *config.Loader
	appConfig    *config.Config
	logger       zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "expman",
	Short: "Archive and browse ML experiment runs",
	Long: `expman wraps finished training runs into experiment directories with a
stable identity, an id_card.json summary, and a searchable registry.

A profile file decides how each run is identified (sequential counter,
config hash, timestamp, or uuid), which config keys are kept, which tags
are attached, and which extra files are listed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExitError carries an exit code for main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Execute runs the root command.
func Execute(version, commit, date string) error {
	rootCmd.Version = formatVersion(version, commit, date)
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/expman/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&expRoot, "exp-root", "", "experiments root directory (default from config)")
}

// initConfig loads configuration using Viper with proper precedence:
// defaults < config file < env vars < CLI flags
func initConfig() {
	configLoader = config.NewLoader()
	if cfgFile != "" {
		configLoader.SetConfigFile(cfgFile)
	}

	var err error
	appConfig, err = configLoader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if rootCmd.PersistentFlags().Changed("log-level") {
		appConfig.Logging.Level = logLevel
	} else if verbose {
		appConfig.Logging.Level = "debug"
	}

	logging.Init(logging.Config{
		Level:        appConfig.Logging.Level,
		Format:       appConfig.Logging.Format,
		EnableCaller: appConfig.Logging.EnableCaller,
	})
	logger = logging.Component("cli")

	if err := appConfig.EnsureDirectories(); err != nil {
		logger.Warn().Err(err).Msg("failed to create directories")
	}

	if cfgUsed := configLoader.ConfigFileUsed(); cfgUsed != "" {
		logger.Debug().Str("config_file", cfgUsed).Msg("loaded config file")
	}
}

// experimentsRoot returns the effective experiments root: flag over config.
func experimentsRoot() string {
	if expRoot != "" {
		return expRoot
	}
	return appConfig.Global.ExperimentsRoot
}

// openDatabase opens the registry database and runs migrations.
func openDatabase(cmd *cobra.Command) (*db.DB, error) {
	database, err := db.Open(db.Config{
		Path:          appConfig.Database.Path,
		MaxOpenConns:  appConfig.Database.MaxConnections,
		BusyTimeoutMs: appConfig.Database.BusyTimeoutMs,
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cmd.Context()); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func formatVersion(version, commit, date string) string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}
