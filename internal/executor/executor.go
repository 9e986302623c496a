// Package executor runs external commands behind a small interface so that
// callers can be tested without touching the system.
package executor

import (
	"context"
	"os/exec"
	"time"
)

// DefaultTimeout bounds every external command invocation. A hung
// apachectl or certbot must fail the operation, not block it forever.
const DefaultTimeout = 30 * time.Second

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments and
	// returns its combined stdout and stderr
	Execute(name string, args ...string) ([]byte, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec with a
// per-invocation wall-clock timeout
type SystemExecutor struct {
	timeout time.Duration
}

// NewSystemExecutor creates a SystemExecutor with the default timeout
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{timeout: DefaultTimeout}
}

// NewSystemExecutorWithTimeout creates a SystemExecutor with a custom timeout.
// A zero or negative timeout falls back to the default.
func NewSystemExecutorWithTimeout(timeout time.Duration) *SystemExecutor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SystemExecutor{timeout: timeout}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return out, ctx.Err()
	}
	return out, err
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}
