// Package certbot invokes the certbot tool and reads its renewal
// bookkeeping directory.
package certbot

import (
	"fmt"
	"path/filepath"

	"github.com/ksyq12/vhostcfg/internal/executor"
)

// Cert points at the certificate material certbot writes for a domain.
type Cert struct {
	Domain   string
	CertPath string
	KeyPath  string
}

// liveDir is the base directory for Let's Encrypt certificates
const liveDir = "/etc/letsencrypt/live"

// cmdExecutor is the command executor (can be replaced for testing)
var cmdExecutor executor.CommandExecutor = executor.NewSystemExecutor()

// SetExecutor allows tests to inject a mock executor
func SetExecutor(exec executor.CommandExecutor) {
	cmdExecutor = exec
}

// ResetExecutor resets the executor to the default system executor
func ResetExecutor() {
	cmdExecutor = executor.NewSystemExecutor()
}

// IsInstalled checks if certbot is installed
func IsInstalled() bool {
	_, err := cmdExecutor.LookPath("certbot")
	return err == nil
}

// runCertbot executes certbot with the given arguments
func runCertbot(args []string) error {
	if !IsInstalled() {
		return fmt.Errorf("certbot is not installed. Install it with: apt install certbot python3-certbot-apache")
	}

	output, err := cmdExecutor.Execute("certbot", args...)
	if err != nil {
		return fmt.Errorf("certbot failed: %s", string(output))
	}
	return nil
}

// Paths returns the certificate paths certbot uses for a domain
func Paths(domain string) *Cert {
	return &Cert{
		Domain:   domain,
		CertPath: filepath.Join(liveDir, domain, "fullchain.pem"),
		KeyPath:  filepath.Join(liveDir, domain, "privkey.pem"),
	}
}

// Issue obtains a certificate through the apache plugin, which also
// writes the TLS VirtualHost block into the ssl conf file. Runs
// non-interactively with automatic terms agreement.
func Issue(domain, email string) (*Cert, error) {
	args := []string{
		"--apache",
		"-d", domain,
		"--agree-tos",
		"--non-interactive",
	}
	if email != "" {
		args = append(args, "--email", email)
	} else {
		args = append(args, "--register-unsafely-without-email")
	}

	if err := runCertbot(args); err != nil {
		return nil, err
	}

	return Paths(domain), nil
}

// Renew renews a specific certificate
func Renew(domain string) error {
	args := []string{
		"renew",
		"--cert-name", domain,
		"--non-interactive",
	}
	return runCertbot(args)
}

// Delete removes a certificate and its renewal bookkeeping
func Delete(domain string) error {
	args := []string{
		"delete",
		"--cert-name", domain,
		"--non-interactive",
	}
	return runCertbot(args)
}
