package httpdconf

import (
	"reflect"
	"testing"
)

func TestParseDirectives_Basic(t *testing.T) {
	d := ParseDirectives(`
    ServerName example.com
    DocumentRoot /var/www/example
`)

	if got, _ := d.First("ServerName"); got != "example.com" {
		t.Errorf("ServerName = %q", got)
	}
	if got, _ := d.First("documentroot"); got != "/var/www/example" {
		t.Errorf("case-folded lookup failed: %q", got)
	}
	if d.Has("ProxyPass") {
		t.Error("ProxyPass should be absent")
	}
}

func TestParseDirectives_MultiValued(t *testing.T) {
	d := ParseDirectives(`
    ServerAlias www.example.com
    ServerAlias static.example.com
    ServerAlias cdn.example.com
`)

	want := []string{"www.example.com", "static.example.com", "cdn.example.com"}
	if got := d.Get("ServerAlias"); !reflect.DeepEqual(got, want) {
		t.Errorf("ServerAlias = %v, want %v (order preserved)", got, want)
	}
}

func TestParseDirectives_Comments(t *testing.T) {
	d := ParseDirectives(`
    # full-line comment
    ServerName example.com  # trailing comment
    DocumentRoot /var/www/site\#1
`)

	if got, _ := d.First("ServerName"); got != "example.com" {
		t.Errorf("trailing comment not stripped: %q", got)
	}
	if got, _ := d.First("DocumentRoot"); got != "/var/www/site#1" {
		t.Errorf("escaped marker not preserved: %q", got)
	}
}

func TestParseDirectives_Continuation(t *testing.T) {
	t.Run("three fragments join with single spaces", func(t *testing.T) {
		d := ParseDirectives(`
    SSLCipherSuite ECDHE-ECDSA-AES128-GCM-SHA256 \
        ECDHE-RSA-AES128-GCM-SHA256 \
        ECDHE-ECDSA-AES256-GCM-SHA384
`)
		want := "ECDHE-ECDSA-AES128-GCM-SHA256 ECDHE-RSA-AES128-GCM-SHA256 ECDHE-ECDSA-AES256-GCM-SHA384"
		if got, _ := d.First("SSLCipherSuite"); got != want {
			t.Errorf("continuation join = %q, want %q", got, want)
		}
	})

	t.Run("blank line force-commits", func(t *testing.T) {
		d := ParseDirectives("Header set X-One a \\\n\nServerName example.com\n")
		if got, _ := d.First("Header"); got != "set X-One a" {
			t.Errorf("pending directive should commit on blank line, got %q", got)
		}
		if got, _ := d.First("ServerName"); got != "example.com" {
			t.Errorf("scan should resume after commit, got %q", got)
		}
	})

	t.Run("unterminated continuation at end of text", func(t *testing.T) {
		d := ParseDirectives("Header set X-Two b \\")
		if got, _ := d.First("Header"); got != "set X-Two b" {
			t.Errorf("unterminated continuation should commit, got %q", got)
		}
	})
}

func TestParseDirectives_NoValue(t *testing.T) {
	d := ParseDirectives("ProxyPreserveHost\n")
	if !d.Has("ProxyPreserveHost") {
		t.Fatal("valueless directive should be present")
	}
	if got, _ := d.First("ProxyPreserveHost"); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestParseDirectives_NestedBlocksMerged(t *testing.T) {
	d := ParseDirectives(`
    ServerName php.example.com
    <FilesMatch \.php$>
        SetHandler "proxy:unix:/run/php/php8.2-fpm.sock|fcgi://localhost"
    </FilesMatch>
    <Directory /var/www/php>
        Options -Indexes
        <IfModule mod_rewrite.c>
            RewriteEngine On
        </IfModule>
    </Directory>
`)

	if !d.Has("SetHandler") {
		t.Error("SetHandler from nested FilesMatch should be merged")
	}
	if !d.Has("Options") {
		t.Error("Options from nested Directory should be merged")
	}
	if !d.Has("RewriteEngine") {
		t.Error("RewriteEngine from doubly-nested IfModule should be merged")
	}

	// Nested directives appear exactly once, not re-counted per level.
	if got := d.Get("SetHandler"); len(got) != 1 {
		t.Errorf("SetHandler should appear once, got %v", got)
	}
}

func TestParseDirectives_OrderWithinName(t *testing.T) {
	d := ParseDirectives("Alias /a /srv/a\nAlias /b /srv/b\n")
	got := d.Get("Alias")
	if len(got) != 2 || got[0] != "/a /srv/a" || got[1] != "/b /srv/b" {
		t.Errorf("insertion order not preserved: %v", got)
	}
}

func TestParseDirectives_SubBlockOnOneLine(t *testing.T) {
	d := ParseDirectives(`
    <Files wp-config.php>Require all denied</Files>
    ServerName example.com
    DocumentRoot /var/www/wp
`)

	if got, ok := d.First("ServerName"); !ok || got != "example.com" {
		t.Errorf("ServerName after one-line sub-block = %q ok=%v, want example.com", got, ok)
	}
	if !d.Has("DocumentRoot") {
		t.Error("DocumentRoot after one-line sub-block should be present")
	}
	if got := d.Get("Require"); len(got) != 1 || got[0] != "all denied" {
		t.Errorf("Require from one-line sub-block should appear once, got %v", got)
	}
}

func TestParseDirectives_TagLineEndsContinuation(t *testing.T) {
	d := ParseDirectives(`
    ServerAlias www.example.com \
    <Directory /var/www/example>
        Require all granted
    </Directory>
    ServerName example.com
`)

	// The dangling continuation commits with what it accumulated; the tag
	// line is never swallowed as a value fragment.
	if got, ok := d.First("ServerAlias"); !ok || got != "www.example.com" {
		t.Errorf("ServerAlias = %q ok=%v, want www.example.com", got, ok)
	}
	if got, ok := d.First("ServerName"); !ok || got != "example.com" {
		t.Errorf("ServerName after sub-block = %q ok=%v, want example.com", got, ok)
	}
	// The sub-block still bounds its region: its directive appears once,
	// from the recursive pass, not doubled by the top-level scan.
	if got := d.Get("Require"); len(got) != 1 {
		t.Errorf("Require should appear once, got %v", got)
	}
}
