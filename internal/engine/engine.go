// Package engine mutates the virtual-host configuration files with
// validate, backup, commit, syntax-check, reload, and rollback steps, and
// exposes the merged read path over both files.
package engine

import (
	"os"
	"sync"
	"time"

	"github.com/ksyq12/vhostcfg/internal/config"
	"github.com/ksyq12/vhostcfg/internal/executor"
	"github.com/ksyq12/vhostcfg/internal/sysops"
)

// Options names the external state an Engine works against.
type Options struct {
	// HTTPConf holds plain-HTTP VirtualHost blocks; the engine's own
	// mutations target this file.
	HTTPConf string
	// SSLConf holds the TLS blocks certbot writes; the engine only ever
	// removes blocks from it.
	SSLConf string
	// BackupDir receives timestamped pre-commit copies and rejected
	// files kept for inspection after a rollback.
	BackupDir string
	// RenewalDir is certbot's renewal bookkeeping directory.
	RenewalDir string

	// SyntaxCheckCmd is run after every commit; its combined output must
	// contain "Syntax OK" to pass, regardless of exit code.
	SyntaxCheckCmd []string
	// ReloadCmd applies committed configuration to the running server.
	ReloadCmd []string

	// CertbotEmail is used when issuing certificates for new sites.
	CertbotEmail string
}

// Engine performs all reads and mutations. Mutating operations are
// serialized by an internal mutex so two operations can never interleave
// their backup and commit phases; reads take no lock.
type Engine struct {
	opts Options
	exec executor.CommandExecutor
	ops  sysops.Ops

	mu  sync.Mutex
	now func() time.Time
}

// New creates an Engine over the given executor and file-operation
// implementation.
func New(opts Options, exec executor.CommandExecutor, ops sysops.Ops) *Engine {
	return &Engine{
		opts: opts,
		exec: exec,
		ops:  ops,
		now:  time.Now,
	}
}

// NewFromConfig builds an Engine from the application configuration,
// using the system executor with the configured timeout and shell-based
// privileged file operations.
func NewFromConfig(cfg *config.Config) *Engine {
	exec := executor.NewSystemExecutorWithTimeout(cfg.CommandTimeout())
	return New(Options{
		HTTPConf:       cfg.HTTPConf,
		SSLConf:        cfg.SSLConf,
		BackupDir:      cfg.BackupDir,
		RenewalDir:     cfg.RenewalDir,
		SyntaxCheckCmd: cfg.SyntaxCheckCmd,
		ReloadCmd:      cfg.ReloadCmd,
		CertbotEmail:   cfg.CertbotEmail,
	}, exec, sysops.NewShellOps(exec))
}

// readFile returns a conf file's text, treating absence as empty.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}
