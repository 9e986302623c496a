package cli

import (
	"strings"

	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/spf13/cobra"
)

var forceRemove bool

var removeCmd = &cobra.Command{
	Use:     "remove <domain>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a site",
	Long: `Remove every VirtualHost block declaring a domain from both managed
conf files. Matching is exact: removing api.example.com never touches a
block that only declares example.com.

Examples:
  vhostcfg remove old.example.com
  vhostcfg rm old.example.com --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Force removal without confirmation")
	removeCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the web server")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if err := requireRoot(); err != nil {
		return err
	}

	if !forceRemove {
		output.Print("Are you sure you want to remove site '%s'? [y/N]: ", domain)
		answer, _ := deps.StdinReader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			output.Info("Removal cancelled")
			return nil
		}
	}

	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	output.Info("Removing site %s...", domain)
	result, err := eng.Remove(domain, !noReload)
	if err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success":       true,
			"domain":        domain,
			"files_changed": result.FilesChanged,
		},
		"Site %s removed", domain,
	)
}
