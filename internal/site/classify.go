package site

import "strings"

// Classify sets Subordinate and Parent across the full resolved record
// set. It must run after records from all files are merged: a subordinate
// whose only block lives in the TLS file still needs to see a principal
// declared in the plain file.
//
// A record is subordinate iff its name has more than two label segments
// and a record whose domain equals the candidate parent (the last two
// labels) exists in the same set. Membership is exact, no suffix
// heuristics: a four-label name with no matching two-label parent present
// is principal.
func Classify(records []*Record) {
	index := make(map[string]bool, len(records))
	for _, rec := range records {
		index[rec.Domain] = true
	}

	for _, rec := range records {
		rec.Subordinate = false
		rec.Parent = ""

		labels := strings.Split(rec.Domain, ".")
		if len(labels) <= 2 {
			continue
		}

		parent := strings.Join(labels[len(labels)-2:], ".")
		if parent != rec.Domain && index[parent] {
			rec.Subordinate = true
			rec.Parent = parent
		}
	}
}

// Merge combines records parsed from the plain HTTP file and the TLS
// file. When a domain appears in both, the HTTP record is kept and the
// TLS copy supplies the certificate state. Domains present only in the
// TLS file are carried through as their own records. Order: HTTP records
// first in source order, then TLS-only records.
func Merge(httpRecords, tlsRecords []*Record) []*Record {
	merged := make([]*Record, 0, len(httpRecords)+len(tlsRecords))
	byDomain := make(map[string]*Record, len(httpRecords))

	for _, rec := range httpRecords {
		merged = append(merged, rec)
		byDomain[rec.Domain] = rec
	}

	for _, tlsRec := range tlsRecords {
		if existing, ok := byDomain[tlsRec.Domain]; ok {
			if tlsRec.TLS.Enabled {
				existing.TLS = tlsRec.TLS
			}
			continue
		}
		merged = append(merged, tlsRec)
		byDomain[tlsRec.Domain] = tlsRec
	}

	return merged
}
