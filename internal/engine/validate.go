package engine

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ksyq12/vhostcfg/internal/errors"
)

// domainPattern enforces label rules and a TLD-like alphabetic suffix.
var domainPattern = regexp.MustCompile(`(?i)^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// Ports below 1024 are reserved for the server itself; backends must
// listen on unprivileged ports.
const (
	minPort = 1024
	maxPort = 65535
)

// deniedRoots are path prefixes a content root may never fall under.
var deniedRoots = []string{
	"/etc", "/bin", "/sbin", "/lib", "/lib64", "/boot",
	"/dev", "/proc", "/sys", "/root", "/run",
	"/usr/bin", "/usr/sbin", "/usr/lib",
}

// ValidateDomain rejects names that are not plausible fully-qualified
// domains. Validation happens before any file I/O.
func ValidateDomain(domain string) error {
	if domain == "" {
		return errors.Validation("domain cannot be empty")
	}
	if len(domain) > 253 {
		return errors.Validation("domain exceeds 253 characters")
	}
	if !domainPattern.MatchString(domain) {
		return errors.Validation(fmt.Sprintf("invalid domain name: %s", domain))
	}
	return nil
}

// ValidatePort rejects routing targets outside the unprivileged range.
func ValidatePort(port int) error {
	if port < minPort || port > maxPort {
		return errors.Validation(fmt.Sprintf("port must be between %d and %d, got %d", minPort, maxPort, port))
	}
	return nil
}

// ValidateRoot rejects content roots that are relative, traverse upward,
// or fall under a sensitive system path.
func ValidateRoot(root string) error {
	if root == "" {
		return errors.Validation("content root cannot be empty")
	}
	if !filepath.IsAbs(root) {
		return errors.Validation(fmt.Sprintf("content root must be absolute: %s", root))
	}
	for _, seg := range strings.Split(root, "/") {
		if seg == ".." {
			return errors.Validation("content root must not contain parent traversal")
		}
	}
	clean := filepath.Clean(root)
	for _, denied := range deniedRoots {
		if clean == denied || strings.HasPrefix(clean, denied+"/") {
			return errors.Validation(fmt.Sprintf("content root under protected path %s", denied))
		}
	}
	return nil
}
