package site

import "testing"

func recs(domains ...string) []*Record {
	out := make([]*Record, len(domains))
	for i, d := range domains {
		out[i] = &Record{Domain: d}
	}
	return out
}

func byDomain(records []*Record) map[string]*Record {
	m := make(map[string]*Record)
	for _, r := range records {
		m[r.Domain] = r
	}
	return m
}

func TestClassify(t *testing.T) {
	t.Run("child with present parent", func(t *testing.T) {
		set := recs("example.com", "api.example.com")
		Classify(set)
		m := byDomain(set)

		if m["example.com"].Subordinate {
			t.Error("two-label name is always principal")
		}
		if !m["api.example.com"].Subordinate {
			t.Error("api.example.com should be subordinate")
		}
		if m["api.example.com"].Parent != "example.com" {
			t.Errorf("parent = %q", m["api.example.com"].Parent)
		}
	})

	t.Run("child without parent is principal", func(t *testing.T) {
		set := recs("api.example.com", "other.org")
		Classify(set)
		m := byDomain(set)

		if m["api.example.com"].Subordinate {
			t.Error("no parent record present, must be principal")
		}
		if m["api.example.com"].Parent != "" {
			t.Errorf("parent should be empty, got %q", m["api.example.com"].Parent)
		}
	})

	t.Run("four labels need exact two-label parent", func(t *testing.T) {
		// deep.api.example.com's candidate parent is example.com, not
		// api.example.com.
		set := recs("api.example.com", "deep.api.example.com")
		Classify(set)
		m := byDomain(set)

		if m["deep.api.example.com"].Subordinate {
			t.Error("no two-label parent present, must be principal")
		}

		set = recs("example.com", "deep.api.example.com")
		Classify(set)
		m = byDomain(set)
		if !m["deep.api.example.com"].Subordinate || m["deep.api.example.com"].Parent != "example.com" {
			t.Errorf("expected subordinate of example.com, got %+v", m["deep.api.example.com"])
		}
	})

	t.Run("reclassification clears stale state", func(t *testing.T) {
		set := recs("example.com", "api.example.com")
		Classify(set)

		// Drop the parent and classify the remainder again.
		remainder := set[1:]
		Classify(remainder)
		if remainder[0].Subordinate || remainder[0].Parent != "" {
			t.Errorf("stale subordinate state survived: %+v", remainder[0])
		}
	})
}

// Property: over synthetic sets, Subordinate is true iff the exact
// two-label parent is present in the same set.
func TestClassify_Property(t *testing.T) {
	universe := []string{
		"example.com", "example.org", "api.example.com", "www.example.org",
		"a.b.example.com", "x.y.z.example.org", "shop.io", "cdn.shop.io",
	}

	// Try every subset of a small universe.
	for mask := 0; mask < (1 << len(universe)); mask++ {
		var set []*Record
		present := make(map[string]bool)
		for i, d := range universe {
			if mask&(1<<i) != 0 {
				set = append(set, &Record{Domain: d})
				present[d] = true
			}
		}
		Classify(set)

		for _, rec := range set {
			labels := 1
			for _, c := range rec.Domain {
				if c == '.' {
					labels++
				}
			}
			var wantParent string
			if labels > 2 {
				parts := rec.Domain
				// last two labels
				dot := 0
				for i := len(parts) - 1; i >= 0; i-- {
					if parts[i] == '.' {
						dot++
						if dot == 2 {
							wantParent = parts[i+1:]
							break
						}
					}
				}
			}
			want := wantParent != "" && present[wantParent]
			if rec.Subordinate != want {
				t.Fatalf("mask %b: %s subordinate=%v, want %v", mask, rec.Domain, rec.Subordinate, want)
			}
			if want && rec.Parent != wantParent {
				t.Fatalf("mask %b: %s parent=%q, want %q", mask, rec.Domain, rec.Parent, wantParent)
			}
		}
	}
}

func TestMerge(t *testing.T) {
	httpRecs := []*Record{
		{Domain: "shop.example.com", Kind: KindStatic, Raw: "http-raw"},
		{Domain: "plain.example.com", Kind: KindProxy, Raw: "plain-raw"},
	}
	tlsRecs := []*Record{
		{Domain: "shop.example.com", Kind: KindStatic, Raw: "tls-raw",
			TLS: TLS{Enabled: true, Status: TLSNone, CertFile: "/le/fullchain.pem"}},
		{Domain: "tlsonly.example.com", Kind: KindStatic, Raw: "tlsonly-raw",
			TLS: TLS{Enabled: true}},
	}

	merged := Merge(httpRecs, tlsRecs)
	if len(merged) != 3 {
		t.Fatalf("expected 3 merged records, got %d", len(merged))
	}

	m := byDomain(merged)
	shop := m["shop.example.com"]
	if shop.Raw != "http-raw" {
		t.Error("HTTP record is the primary copy after merge")
	}
	if !shop.TLS.Enabled || shop.TLS.CertFile != "/le/fullchain.pem" {
		t.Errorf("TLS copy should supply the tls field: %+v", shop.TLS)
	}
	if !m["tlsonly.example.com"].TLS.Enabled {
		t.Error("TLS-only record carried through")
	}
	if m["plain.example.com"].TLS.Enabled {
		t.Error("record without a TLS copy stays non-TLS")
	}
}
