package cli

import (
	"strings"

	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/spf13/cobra"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show one site in detail",
	Long: `Show the full record for one domain.

Examples:
  vhostcfg show example.com
  vhostcfg show example.com --raw
  vhostcfg show example.com --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the raw VirtualHost block text")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	domain := args[0]

	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	rec, err := eng.Get(domain)
	if err != nil {
		return err
	}

	if showRaw {
		output.Print("%s", rec.Raw)
		return nil
	}

	if jsonOutput {
		return output.JSON(rec)
	}

	rows := [][]string{
		{"ID", rec.ID},
		{"Domain", rec.Domain},
		{"Kind", string(rec.Kind)},
		{"Target", kindTarget(rec)},
		{"TLS", tlsSummary(rec)},
	}
	if len(rec.Aliases) > 0 {
		rows = append(rows, []string{"Aliases", strings.Join(rec.Aliases, " ")})
	}
	if rec.Subordinate {
		rows = append(rows, []string{"Parent", rec.Parent})
	}
	if rec.AccessLog != "" {
		rows = append(rows, []string{"Access log", rec.AccessLog})
	}
	if rec.ErrorLog != "" {
		rows = append(rows, []string{"Error log", rec.ErrorLog})
	}
	if rec.TLS.CertFile != "" {
		rows = append(rows, []string{"Certificate", rec.TLS.CertFile})
	}

	output.Table([]string{"FIELD", "VALUE"}, rows)
	return nil
}
