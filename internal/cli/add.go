package cli

import (
	"fmt"

	"github.com/ksyq12/vhostcfg/internal/engine"
	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/ksyq12/vhostcfg/internal/site"
	"github.com/spf13/cobra"
)

var (
	siteType string
	sitePort int
	siteRoot string
	noReload bool
	skipCert bool
	dryRun   bool
)

var addCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Add a new site",
	Long: `Add a new VirtualHost block for a domain.

The block is appended to the managed conf file, syntax-checked, and the
server reloaded. A certificate is then requested through certbot unless
--skip-cert is given. On syntax or reload failure all changes are rolled
back.

Examples:
  vhostcfg add app.example.com --type proxy --port 3000
  vhostcfg add www.example.com --type static --root /var/www/example
  vhostcfg add app.example.com --type proxy --port 3000 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&siteType, "type", "t", "static", "Site type (proxy, static)")
	addCmd.Flags().IntVarP(&sitePort, "port", "p", 0, "Backend port (for proxy type)")
	addCmd.Flags().StringVarP(&siteRoot, "root", "r", "", "Document root path (for static type)")
	addCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the web server")
	addCmd.Flags().BoolVar(&skipCert, "skip-cert", false, "Don't request a certificate")
	addCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the block that would be added without changing anything")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	params := engine.AddParams{
		Domain:     args[0],
		Kind:       site.Kind(siteType),
		Port:       sitePort,
		Root:       siteRoot,
		SkipReload: noReload,
		SkipCert:   skipCert,
	}

	if dryRun {
		block, err := engine.RenderBlock(params)
		if err != nil {
			return err
		}
		if jsonOutput {
			return output.JSON(map[string]interface{}{
				"domain":  params.Domain,
				"type":    siteType,
				"preview": block,
			})
		}
		output.Info("Would append to the conf file:")
		output.Print("%s", block)
		return nil
	}

	if err := requireRoot(); err != nil {
		return err
	}

	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	output.Info("Adding site %s...", params.Domain)
	result, err := eng.Add(params)
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"success": true,
		"domain":  params.Domain,
		"type":    siteType,
	}
	if result.CertError != nil {
		output.Warn("Site added but certificate issuance failed: %v", result.CertError)
		output.Warn("Re-run certbot manually once the cause is fixed")
		data["cert_error"] = fmt.Sprintf("%v", result.CertError)
	}

	return outputResult(data, "Site %s added", params.Domain)
}
