package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ksyq12/vhostcfg/internal/certbot"
	"github.com/ksyq12/vhostcfg/internal/config"
	"github.com/ksyq12/vhostcfg/internal/executor"
	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks on the system and site configuration.

Checks:
  - Apache installation and version
  - Apache process running
  - Certbot installation
  - Managed conf files readable
  - Configuration syntax

Examples:
  vhostcfg doctor
  vhostcfg doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	SystemRequirements []CheckResult `json:"system_requirements"`
	Configuration      []CheckResult `json:"configuration"`
}

var apacheVersionPattern = regexp.MustCompile(`Apache/(\d+\.\d+\.\d+)`)

func runDoctor(cmd *cobra.Command, args []string) error {
	exec := executor.NewSystemExecutor()

	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	report := &DoctorReport{
		SystemRequirements: checkSystemRequirements(exec, cfg),
		Configuration:      checkConfiguration(exec, cfg),
	}

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func checkSystemRequirements(exec executor.CommandExecutor, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	// Apache binary
	checkBinary := cfg.SyntaxCheckCmd[0]
	if _, err := exec.LookPath(checkBinary); err == nil {
		version := "unknown"
		if out, err := exec.Execute(checkBinary, "-v"); err == nil {
			if matches := apacheVersionPattern.FindStringSubmatch(string(out)); len(matches) >= 2 {
				version = matches[1]
			}
		}
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Apache installed (%s)", version),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("%s not found in PATH", checkBinary),
		})
	}

	// Apache process
	if apacheRunning() {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "Apache process running",
		})
	} else {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: "No Apache process detected",
		})
	}

	// Certbot
	if certbot.IsInstalled() {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "Certbot installed",
		})
	} else {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: "Certbot not installed, certificate issuance will fail",
		})
	}

	return results
}

// apacheRunning scans the process table for an apache2 or httpd process.
func apacheRunning() bool {
	procs, err := process.Processes()
	if err != nil {
		return false
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		name = strings.ToLower(name)
		if name == "apache2" || name == "httpd" {
			return true
		}
	}
	return false
}

func checkConfiguration(exec executor.CommandExecutor, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	for _, path := range []string{cfg.HTTPConf, cfg.SSLConf} {
		if _, err := os.Stat(path); err == nil {
			results = append(results, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("Conf file readable (%s)", path),
			})
		} else if os.IsNotExist(err) {
			results = append(results, CheckResult{
				Status:  "warning",
				Message: fmt.Sprintf("Conf file missing (%s), will be created on first add", path),
			})
		} else {
			results = append(results, CheckResult{
				Status:  "error",
				Message: fmt.Sprintf("Conf file not readable (%s): %v", path, err),
			})
		}
	}

	// Syntax
	out, err := exec.Execute(cfg.SyntaxCheckCmd[0], cfg.SyntaxCheckCmd[1:]...)
	if strings.Contains(string(out), "Syntax OK") {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "Configuration syntax OK",
		})
	} else {
		msg := "Configuration syntax check failed"
		if err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		results = append(results, CheckResult{
			Status:  "error",
			Message: msg,
		})
	}

	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking system requirements...")
	for _, check := range report.SystemRequirements {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
