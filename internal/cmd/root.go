// Package cmd wires the adforge CLI: generation commands, history, and the
// HTTP serve mode.
package cmd

import (
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/adforge/adforge/internal/config"
	"github.com/adforge/adforge/internal/observability"
)

const appName = "adforge"

var (
	cfgFile string
	verbose bool

	appConfig *config.Config

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Veo3/Flow marketing-video prompt generator",
	Long: `adforge turns a structured product description into ready-to-use
Veo3/Flow video prompt strategies via a generative-AI backend.

Use the subcommands to perform specific operations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/adforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig loads .env, initializes the CLI logger, and reads the
// configuration stack (defaults, file, ADFORGE_* env, flags).
func initConfig() {
	// Provider API keys (GEMINI_API_KEY, OPENAI_API_KEY) commonly live in a
	// local .env during development. Absence is fine.
	_ = godotenv.Load()

	observability.InitCLILogger(appName, verbose)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to load configuration", err)
	}
	appConfig = cfg

	if verbose && viper.ConfigFileUsed() != "" {
		observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}

// currentConfig returns the loaded config, falling back to defaults when a
// command runs outside cobra's initialization (tests).
func currentConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	return config.Get()
}
