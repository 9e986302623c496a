package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ksyq12/vhostcfg/internal/errors"
	"github.com/ksyq12/vhostcfg/internal/logger"
)

// syntaxOKMarker is the literal the syntax-check tool prints on success.
// The tool may exit non-zero on warnings, so the exit code alone is not
// trusted.
const syntaxOKMarker = "Syntax OK"

// missingCertPattern matches the syntax-check complaint about absent
// certificate material. During removal this is non-fatal: the certificate
// may legitimately no longer exist.
var missingCertPattern = regexp.MustCompile(`(?i)SSLCertificate\w*File.*(does not exist|can't open file|No such file)`)

// applyOptions tunes one pass of the commit state machine.
type applyOptions struct {
	domain              string
	reload              bool
	tolerateMissingCert bool
}

// apply drives one file through the mutation state machine: stage the new
// content to a private temp file, back up the current file, commit, run
// the syntax check, reload. Any failure after commit restores the backup.
// The terminal states are committed (nil error) or rolled back (error).
// It returns the syntax tool's combined output for operator visibility.
func (e *Engine) apply(path, content string, opts applyOptions) (string, error) {
	// Stage.
	stage, err := os.CreateTemp("", "vhostcfg-stage-*.conf")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to create staging file", err)
	}
	stagePath := stage.Name()
	defer os.Remove(stagePath)

	if _, err := stage.WriteString(content); err != nil {
		stage.Close()
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write staging file", err)
	}
	if err := stage.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to write staging file", err)
	}

	// Backup.
	backup := ""
	if _, err := os.Stat(path); err == nil {
		if err := os.MkdirAll(e.opts.BackupDir, 0755); err != nil {
			return "", errors.Wrap(errors.ErrCodePermission, "failed to create backup directory", err)
		}
		backup = filepath.Join(e.opts.BackupDir,
			fmt.Sprintf("%s.%s.bak", filepath.Base(path), e.now().Format("20060102-150405")))
		if err := e.ops.Copy(path, backup); err != nil {
			return "", errors.Wrap(errors.ErrCodePermission, "failed to back up "+path, err)
		}
		logger.DebugFields("backup taken", map[string]interface{}{"file": path, "backup": backup})
	}

	// Commit.
	if err := e.ops.Copy(stagePath, path); err != nil {
		return "", errors.Wrap(errors.ErrCodePermission, "failed to commit "+path, err)
	}
	if err := e.ops.Chmod(path, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodePermission, "failed to set permissions on "+path, err)
	}

	// Syntax check.
	out, checkErr := e.syntaxCheck()
	if checkErr != nil {
		if opts.tolerateMissingCert && missingCertPattern.MatchString(out) {
			logger.Warn("syntax check reports missing certificate material, proceeding: %s", strings.TrimSpace(out))
		} else {
			rejected := e.preserveRejected(path)
			e.restore(path, backup)
			msg := "syntax check failed"
			if rejected != "" {
				msg = fmt.Sprintf("syntax check failed (rejected file saved at %s)", rejected)
			}
			return out, &errors.ConfigError{
				Code:    errors.ErrCodeSyntax,
				Message: msg,
				Domain:  opts.domain,
				Output:  out,
				Err:     checkErr,
			}
		}
	}

	// Reload.
	if opts.reload {
		if reloadOut, err := e.exec.Execute(e.opts.ReloadCmd[0], e.opts.ReloadCmd[1:]...); err != nil {
			e.restore(path, backup)
			// One reload attempt with the restored file so the server is
			// not left running stale config in memory only.
			if _, retryErr := e.exec.Execute(e.opts.ReloadCmd[0], e.opts.ReloadCmd[1:]...); retryErr != nil {
				logger.Error("reload with restored file also failed: %v", retryErr)
			}
			return out, errors.Reload(string(reloadOut), err)
		}
	}

	logger.InfoFields("committed", map[string]interface{}{"file": path, "reload": opts.reload})
	return out, nil
}

// syntaxCheck runs the external syntax-test tool and scans its combined
// output for the OK marker.
func (e *Engine) syntaxCheck() (string, error) {
	out, err := e.exec.Execute(e.opts.SyntaxCheckCmd[0], e.opts.SyntaxCheckCmd[1:]...)
	text := string(out)
	if strings.Contains(text, syntaxOKMarker) {
		return text, nil
	}
	if err == nil {
		err = fmt.Errorf("output missing %q marker", syntaxOKMarker)
	}
	return text, err
}

// preserveRejected saves a copy of the failing file for inspection and
// returns its location, or "" when the copy could not be taken.
func (e *Engine) preserveRejected(path string) string {
	if err := os.MkdirAll(e.opts.BackupDir, 0755); err != nil {
		return ""
	}
	rejected := filepath.Join(e.opts.BackupDir,
		fmt.Sprintf("%s.%s.rejected", filepath.Base(path), e.now().Format("20060102-150405")))
	if err := e.ops.Copy(path, rejected); err != nil {
		return ""
	}
	return rejected
}

// restore puts the pre-commit state back: the backup copy when one was
// taken, otherwise the file did not exist and is removed again.
func (e *Engine) restore(path, backup string) {
	var err error
	if backup != "" {
		err = e.ops.Copy(backup, path)
	} else {
		err = e.ops.Delete(path)
	}
	if err != nil {
		logger.Error("rollback of %s failed: %v", path, err)
	}
}
