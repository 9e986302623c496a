package cli

import (
	"sort"

	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/ksyq12/vhostcfg/internal/site"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all configured sites",
	Long: `List every site declared in the managed conf files.

Examples:
  vhostcfg list
  vhostcfg ls
  vhostcfg list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	_, eng, err := loadEngine()
	if err != nil {
		return err
	}

	records, err := eng.List()
	if err != nil {
		return err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Domain < records[j].Domain
	})

	if len(records) == 0 {
		if jsonOutput {
			return output.JSON([]*site.Record{})
		}
		output.Info("No sites configured")
		return nil
	}

	if jsonOutput {
		return output.JSON(records)
	}

	headers := []string{"DOMAIN", "KIND", "TARGET", "TLS", "PARENT"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		parent := ""
		if rec.Subordinate {
			parent = rec.Parent
		}
		rows = append(rows, []string{
			rec.Domain,
			string(rec.Kind),
			kindTarget(rec),
			tlsSummary(rec),
			parent,
		})
	}

	output.Table(headers, rows)
	return nil
}
