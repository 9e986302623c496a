package cli

import (
	"fmt"

	"github.com/ksyq12/vhostcfg/internal/config"
	"github.com/ksyq12/vhostcfg/internal/output"
	"github.com/ksyq12/vhostcfg/internal/site"
)

// loadEngine loads config and builds the engine over it
func loadEngine() (*config.Config, Engine, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, deps.EngineFactory.Create(cfg), nil
}

// requireRoot fails unless the process can perform privileged file operations
func requireRoot() error {
	return deps.RootChecker.RequireRoot()
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message,omitempty"`
}

// kindTarget renders the thing a record points at: the backend port for
// proxy sites, the content root otherwise.
func kindTarget(rec *site.Record) string {
	if rec.Kind == site.KindProxy {
		return fmt.Sprintf("127.0.0.1:%d", rec.Port)
	}
	return rec.Root
}

// tlsSummary renders one cell of certificate state.
func tlsSummary(rec *site.Record) string {
	if !rec.TLS.Enabled {
		return "no"
	}
	s := string(rec.TLS.Status)
	if rec.TLS.DaysRemaining != nil {
		s = fmt.Sprintf("%s (%dd)", s, *rec.TLS.DaysRemaining)
	}
	return s
}
