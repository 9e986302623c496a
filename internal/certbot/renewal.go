package certbot

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CertStatus is the health of a certificate relative to its expiry.
type CertStatus string

const (
	StatusActive   CertStatus = "active"
	StatusExpiring CertStatus = "expiring"
	StatusExpired  CertStatus = "expired"
)

// expiringWindowDays is how close to expiry a certificate is reported as
// expiring rather than active.
const expiringWindowDays = 7

// RenewalInfo is the expiry bookkeeping certbot keeps for one domain.
type RenewalInfo struct {
	Domain        string
	ExpiresAt     time.Time
	DaysRemaining int
	Status        CertStatus
}

// expiryLayouts are the timestamp formats accepted for the expiry_date
// field, first match wins.
var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadRenewalInfo scans certbot's renewal directory and computes expiry
// status per domain as of now. An absent directory yields an empty map
// without error. Files that do not parse are skipped.
func LoadRenewalInfo(dir string, now time.Time) (map[string]RenewalInfo, error) {
	info := make(map[string]RenewalInfo)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return info, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".conf") || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		expiry, ok := parseExpiry(string(data))
		if !ok {
			continue
		}

		domain := strings.TrimSuffix(name, ".conf")
		days := int(math.Floor(expiry.Sub(now).Hours() / 24))

		info[domain] = RenewalInfo{
			Domain:        domain,
			ExpiresAt:     expiry,
			DaysRemaining: days,
			Status:        statusFor(days),
		}
	}

	return info, nil
}

func statusFor(daysRemaining int) CertStatus {
	switch {
	case daysRemaining < 0:
		return StatusExpired
	case daysRemaining <= expiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// parseExpiry finds the expiry_date field in a renewal file and parses
// its value.
func parseExpiry(content string) (time.Time, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToLower(line), "expiry_date") {
			continue
		}
		_, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		for _, layout := range expiryLayouts {
			if ts, err := time.Parse(layout, value); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}
