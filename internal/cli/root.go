package cli

import (
	"os"

	"github.com/ksyq12/vhostcfg/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vhostcfg",
	Short: "Apache virtual host configuration manager",
	Long: `vhostcfg manages Apache VirtualHost blocks in a consolidated conf file.

It lists and classifies configured sites, adds, updates, and removes
VirtualHost blocks with automatic backup and rollback, and tracks Let's
Encrypt certificate state through certbot's renewal metadata.`,
}

// Execute runs the root command
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
