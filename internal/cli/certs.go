package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/ksyq12/vhostcfg/internal/certbot"
	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/spf13/cobra"
)

var certsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Show certificate renewal state",
	Long: `Show the expiry state certbot records for every known certificate,
whether or not a site currently references it.

Examples:
  vhostcfg certs
  vhostcfg certs --json`,
	RunE: runCerts,
}

func init() {
	rootCmd.AddCommand(certsCmd)
}

type certListItem struct {
	Domain        string    `json:"domain"`
	Status        string    `json:"status"`
	ExpiresAt     time.Time `json:"expires_at"`
	DaysRemaining int       `json:"days_remaining"`
}

func runCerts(cmd *cobra.Command, args []string) error {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	renewal, err := certbot.LoadRenewalInfo(cfg.RenewalDir, time.Now())
	if err != nil {
		return fmt.Errorf("failed to read renewal directory: %w", err)
	}

	items := make([]certListItem, 0, len(renewal))
	for domain, info := range renewal {
		items = append(items, certListItem{
			Domain:        domain,
			Status:        string(info.Status),
			ExpiresAt:     info.ExpiresAt,
			DaysRemaining: info.DaysRemaining,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Domain < items[j].Domain
	})

	if len(items) == 0 {
		if jsonOutput {
			return output.JSON([]certListItem{})
		}
		output.Info("No renewal metadata found in %s", cfg.RenewalDir)
		return nil
	}

	if jsonOutput {
		return output.JSON(items)
	}

	headers := []string{"DOMAIN", "STATUS", "EXPIRES", "DAYS LEFT"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.Domain,
			item.Status,
			item.ExpiresAt.Format("2006-01-02"),
			fmt.Sprintf("%d", item.DaysRemaining),
		})
	}

	output.Table(headers, rows)
	return nil
}
