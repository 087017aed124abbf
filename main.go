package main

import (
	"fmt"
	"os"

	"unisearch/config"
	"unisearch/models"

	"github.com/rohanthewiz/logger"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is resolved once before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "unisearch",
	Short: "Search universities by country",
	Long: `unisearch looks up the universities of a country in the public university
directory. Results can be filtered by state or province, and any result card
can be exported as a JPEG image.

Run "unisearch serve" for the web widget or "unisearch tui" for the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(config.New(cfgFile))
		if err != nil {
			return err
		}
		cfg = loaded
		logger.SetLogLevel(cfg.LogLevel)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of unisearch",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("unisearch %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./unisearch.yaml or ~/.config/unisearch/unisearch.yaml)")
	rootCmd.AddCommand(versionCmd)
}

// newDirectory builds the upstream client both front ends share.
func newDirectory(c config.Config) *models.DirectoryClient {
	return models.NewDirectoryClient(models.DirectoryClientOptions{
		BaseURL:       c.Directory.BaseURL,
		Timeout:       c.Directory.Timeout,
		RatePerSecond: c.Directory.RatePerSecond,
		MaxRetries:    c.Directory.MaxRetries,
		UserAgent:     "unisearch/" + version,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
