package site

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/ksyq12/vhostcfg/internal/httpdconf"
)

// loopbackURL matches a proxy target on the local machine. Accepted
// schemes cover plain and websocket upgrades.
var loopbackURL = regexp.MustCompile(`(?i)(wss?|https?)://(127\.0\.0\.1|localhost):(\d+)`)

// Build converts one block's directives into a Record for the given
// domain name. Pure: no file or process access.
//
// Classification order, first match wins: a proxy-routing directive makes
// the site proxy-backed; a handler directive mentioning the legacy PHP
// interpreter makes it legacy-unmanaged; a content root alone makes it
// static. Sites declaring none of these default to static.
func Build(domain string, d httpdconf.Directives, raw string) *Record {
	rec := &Record{
		ID:     DeriveID(domain),
		Domain: domain,
		Raw:    raw,
	}

	switch {
	case d.Has("ProxyPass"):
		rec.Kind = KindProxy
		rec.Port = proxyPort(d.Get("ProxyPass"))
	case mentionsLegacyInterpreter(d):
		rec.Kind = KindLegacy
		rec.Root, _ = d.First("DocumentRoot")
	default:
		rec.Kind = KindStatic
		rec.Root, _ = d.First("DocumentRoot")
	}

	rec.AccessLog = logPath(d, "CustomLog")
	rec.ErrorLog = logPath(d, "ErrorLog")

	// TLS presence is independent of kind.
	rec.TLS = buildTLS(d)

	return rec
}

// BuildAll produces one Record per declared name of a block: the primary
// ServerName plus each ServerAlias. Every record lists the block's other
// names as aliases so callers can tell the records share one block.
func BuildAll(d httpdconf.Directives, raw string) []*Record {
	primary, ok := d.First("ServerName")
	if !ok || primary == "" {
		return nil
	}

	names := []string{primary}
	for _, line := range d.Get("ServerAlias") {
		// One ServerAlias line may carry several names.
		names = append(names, strings.Fields(line)...)
	}

	records := make([]*Record, 0, len(names))
	for i, name := range names {
		rec := Build(name, d, raw)
		rec.Aliases = otherNames(names, i)
		records = append(records, rec)
	}
	return records
}

func otherNames(names []string, skip int) []string {
	if len(names) <= 1 {
		return nil
	}
	out := make([]string, 0, len(names)-1)
	for i, n := range names {
		if i != skip {
			out = append(out, n)
		}
	}
	return out
}

// proxyPort extracts the backend port from the first value holding a
// loopback URL.
func proxyPort(values []string) int {
	for _, v := range values {
		if m := loopbackURL.FindStringSubmatch(v); m != nil {
			return cast.ToInt(m[3])
		}
	}
	return 0
}

// mentionsLegacyInterpreter reports whether any handler directive routes
// through the PHP interpreter.
func mentionsLegacyInterpreter(d httpdconf.Directives) bool {
	for _, name := range []string{"SetHandler", "AddHandler", "AddType"} {
		for _, v := range d.Get(name) {
			if strings.Contains(strings.ToLower(v), "php") {
				return true
			}
		}
	}
	return false
}

func buildTLS(d httpdconf.Directives) TLS {
	tls := TLS{Status: TLSNone}

	if v, ok := d.First("SSLEngine"); ok && strings.EqualFold(v, "on") {
		tls.Enabled = true
	}
	if v, ok := d.First("SSLCertificateFile"); ok {
		tls.Enabled = true
		tls.CertFile = v
	}
	if v, ok := d.First("SSLCertificateKeyFile"); ok {
		tls.KeyFile = v
	}
	return tls
}

// logPath returns the file path of a log directive, dropping the format
// argument CustomLog carries after the path.
func logPath(d httpdconf.Directives, name string) string {
	v, ok := d.First(name)
	if !ok {
		return ""
	}
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
