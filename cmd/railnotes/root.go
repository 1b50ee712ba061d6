package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/metroplan/railnotes/internal/api"
	"github.com/metroplan/railnotes/internal/server/endpoints"
	"github.com/metroplan/railnotes/version"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
)

var rootCmd = &cobra.Command{
	Use:   "railnotes",
	Short: "Convert unstructured train operational notes into structured JSON",
	Long: `Railnotes converts free-form train operational text into a structured
JSON record using a hosted language model.

The service extracts a fixed set of fields from messy depot notes:
  - date, branding priorities, cleaning slots
  - stabling geometry, fitness certificates
  - job card status, mileage

Fields absent from the input are filled with "Not specified" rather
than rejected.`,
	Version: version.GitRelease,
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.railnotes/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// API keys may live in a local .env file
		_ = godotenv.Load()
		api.SetOutputFormat(outputFormat)
	}

	// Build the api command tree from the endpoint registry
	registry := api.NewRegistry()
	for _, ep := range endpoints.All() {
		registry.Register(ep)
	}
	apiCmd := registry.BuildCommands(getServerURL)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8000", "Server URL",
	)

	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(versionCmd)
}
