// Package sysops abstracts the privileged file operations the mutation
// engine needs behind three verbs: copy, chmod, delete.
//
// The engine's logic depends only on the Ops interface so tests can run
// against plain filesystem operations. ShellOps is the production
// implementation and shells out, which is where privilege comes from
// when the process runs as root.
package sysops

import (
	"fmt"
	"io"
	"os"

	"github.com/ksyq12/vhostcfg/internal/executor"
)

// Ops is the verb interface for privileged file manipulation.
type Ops interface {
	// Copy duplicates src to dst, overwriting dst. Both paths absolute.
	Copy(src, dst string) error

	// Chmod sets permissions on path.
	Chmod(path string, mode os.FileMode) error

	// Delete removes path. Deleting an absent path is not an error.
	Delete(path string) error
}

// ShellOps implements Ops by running the standard file utilities through
// an executor.
type ShellOps struct {
	exec executor.CommandExecutor
}

// NewShellOps creates a ShellOps over the given executor.
func NewShellOps(exec executor.CommandExecutor) *ShellOps {
	return &ShellOps{exec: exec}
}

// Copy runs cp -p, preserving mode and timestamps of the source.
func (s *ShellOps) Copy(src, dst string) error {
	if out, err := s.exec.Execute("cp", "-p", src, dst); err != nil {
		return fmt.Errorf("copy %s -> %s failed: %s: %w", src, dst, string(out), err)
	}
	return nil
}

// Chmod runs chmod with an octal mode string.
func (s *ShellOps) Chmod(path string, mode os.FileMode) error {
	if out, err := s.exec.Execute("chmod", fmt.Sprintf("%04o", mode.Perm()), path); err != nil {
		return fmt.Errorf("chmod %s failed: %s: %w", path, string(out), err)
	}
	return nil
}

// Delete runs rm -f.
func (s *ShellOps) Delete(path string) error {
	if out, err := s.exec.Execute("rm", "-f", path); err != nil {
		return fmt.Errorf("delete %s failed: %s: %w", path, string(out), err)
	}
	return nil
}

// LocalOps implements Ops with direct filesystem calls. Used by tests and
// when the tool already runs with sufficient permissions on the target
// paths.
type LocalOps struct{}

// NewLocalOps creates a LocalOps.
func NewLocalOps() *LocalOps {
	return &LocalOps{}
}

// Copy duplicates src to dst byte-for-byte.
func (l *LocalOps) Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy: open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("copy: stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy: create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	return out.Close()
}

// Chmod sets permissions on path.
func (l *LocalOps) Chmod(path string, mode os.FileMode) error {
	return os.Chmod(path, mode)
}

// Delete removes path, tolerating absence.
func (l *LocalOps) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
