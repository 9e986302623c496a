// Package site builds structured site records from parsed VirtualHost
// blocks and classifies relationships between them.
package site

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Kind distinguishes how a site serves its content. The kinds are
// mutually exclusive.
type Kind string

const (
	// KindProxy routes requests to a local backend port.
	KindProxy Kind = "proxy"
	// KindStatic serves files from a content root.
	KindStatic Kind = "static"
	// KindLegacy is handled by the legacy PHP interpreter and is not
	// managed beyond listing.
	KindLegacy Kind = "legacy"
)

// TLSStatus is the certificate health of a site.
type TLSStatus string

const (
	TLSNone     TLSStatus = "none"
	TLSActive   TLSStatus = "active"
	TLSExpiring TLSStatus = "expiring"
	TLSExpired  TLSStatus = "expired"
)

// TLS describes a site's certificate state.
type TLS struct {
	Enabled       bool       `json:"enabled"`
	Status        TLSStatus  `json:"status"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	CertFile      string     `json:"cert_file,omitempty"`
	KeyFile       string     `json:"key_file,omitempty"`
}

// Record is one advertised domain name and everything derived about it.
// Records are rebuilt from scratch on every read; the conf files are the
// only source of truth.
type Record struct {
	ID      string   `json:"id"`
	Domain  string   `json:"domain"`
	Aliases []string `json:"aliases,omitempty"`

	Kind Kind   `json:"kind"`
	Port int    `json:"port,omitempty"` // proxy kind only
	Root string `json:"root,omitempty"`

	AccessLog string `json:"access_log,omitempty"`
	ErrorLog  string `json:"error_log,omitempty"`

	TLS TLS `json:"tls"`

	Subordinate bool   `json:"subordinate"`
	Parent      string `json:"parent,omitempty"`

	// Raw is the exact source text of the originating block, retained
	// for audit and removal matching.
	Raw string `json:"-"`
}

// ID derives a stable, content-addressed identifier from a domain name.
func DeriveID(domain string) string {
	sum := sha256.Sum256([]byte(domain))
	return hex.EncodeToString(sum[:])[:12]
}
