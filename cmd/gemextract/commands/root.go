// Package commands implements the CLI commands for gemextract.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gemextract",
	Short: "Extract structured field values from text documents",
	Long: `Gemextract pulls named entities out of text documents and maps them
onto user-specified field columns, producing a tabular record set.

Extraction runs through a model-backed engine when an API credential is
configured and degrades to a deterministic regex extractor otherwise.

Examples:
  # Run the HTTP service
  gemextract serve --listen :5000

  # One-shot extraction over local files
  gemextract extract --fields company,person,location report.txt notes.txt

  # Use a specific model
  gemextract extract --fields title,author -m claude-3-5-haiku-20241022 doc.txt`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.gemextract.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	// Pick up a local .env if present; real environment wins.
	_ = godotenv.Load()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".gemextract")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GEMEXTRACT")
	viper.AutomaticEnv()

	// Recognized credential variables, in priority order
	_ = viper.BindEnv("api_key", "GEMEXTRACT_API_KEY", "GEMINI_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
