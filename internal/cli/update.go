package cli

import (
	"fmt"

	"github.com/ksyq12/vhostcfg/internal/engine"
	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/spf13/cobra"
)

var (
	updatePort int
	updateRoot string
)

var updateCmd = &cobra.Command{
	Use:   "update <domain>",
	Short: "Update an existing site",
	Long: `Rewrite the backend port or document root of an existing site.

Exactly one of --port and --root must be given. The change is scoped to
the block whose ServerName matches the domain exactly.

Examples:
  vhostcfg update app.example.com --port 5000
  vhostcfg update www.example.com --root /srv/example`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().IntVarP(&updatePort, "port", "p", 0, "New backend port")
	updateCmd.Flags().StringVarP(&updateRoot, "root", "r", "", "New document root path")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if (updatePort == 0) == (updateRoot == "") {
		return fmt.Errorf("exactly one of --port and --root is required")
	}

	if err := requireRoot(); err != nil {
		return err
	}

	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	var result *engine.UpdateResult
	if updatePort != 0 {
		output.Info("Updating backend port of %s...", domain)
		result, err = eng.UpdatePort(domain, updatePort)
	} else {
		output.Info("Updating document root of %s...", domain)
		result, err = eng.UpdateRoot(domain, updateRoot)
	}
	if err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"domain":  result.Domain,
		},
		"Site %s updated", result.Domain,
	)
}
