package httpdconf

import (
	"strings"
	"testing"
)

const twoBlocks = `# managed by vhostcfg
<VirtualHost *:80>
    ServerName example.com
    DocumentRoot /var/www/example
</VirtualHost>

# second site
<VirtualHost *:80>
    ServerName api.example.com
    ProxyPass / http://127.0.0.1:3000/
</VirtualHost>
`

func TestExtractBlocks(t *testing.T) {
	blocks := ExtractBlocks(twoBlocks)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	if blocks[0].OpenTag != "<VirtualHost *:80>" {
		t.Errorf("unexpected open tag: %q", blocks[0].OpenTag)
	}
	if !strings.Contains(blocks[0].Interior, "ServerName example.com") {
		t.Errorf("first interior missing ServerName: %q", blocks[0].Interior)
	}
	if !strings.Contains(blocks[1].Interior, "api.example.com") {
		t.Errorf("second interior wrong: %q", blocks[1].Interior)
	}

	for i, b := range blocks {
		if twoBlocks[b.Start:b.End] != b.Raw {
			t.Errorf("block %d: Raw does not match source span", i)
		}
		if !strings.HasPrefix(b.Raw, "<VirtualHost") || !strings.HasSuffix(b.Raw, "</VirtualHost>") {
			t.Errorf("block %d: Raw not delimited by tags: %q", i, b.Raw)
		}
	}
}

func TestExtractBlocks_CaseInsensitiveAndWhitespace(t *testing.T) {
	text := "<virtualhost *:443>\n  ServerName a.example.com\n</ VirtualHost >\n"
	blocks := ExtractBlocks(text)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0].Interior, "a.example.com") {
		t.Errorf("unexpected interior: %q", blocks[0].Interior)
	}
}

func TestExtractBlocks_UnterminatedDoesNotCorrupt(t *testing.T) {
	text := `<VirtualHost *:80>
    ServerName broken.example.com
# no closing tag

<VirtualHost *:80>
    ServerName intact.example.com
</VirtualHost>
`
	blocks := ExtractBlocks(text)
	if len(blocks) != 1 {
		t.Fatalf("expected only the intact block, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0].Interior, "intact.example.com") {
		t.Errorf("wrong block survived: %q", blocks[0].Interior)
	}
}

func TestExtractBlocks_NestedSubBlockDoesNotCloseEarly(t *testing.T) {
	text := `<VirtualHost *:80>
    ServerName php.example.com
    <FilesMatch \.php$>
        SetHandler "proxy:unix:/run/php/php8.2-fpm.sock|fcgi://localhost"
    </FilesMatch>
</VirtualHost>
`
	blocks := ExtractBlocks(text)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0].Interior, "</FilesMatch>") {
		t.Errorf("interior should span the nested block: %q", blocks[0].Interior)
	}
}

func TestExtractBlocks_IgnoresOtherTopLevelBlocks(t *testing.T) {
	text := `<Directory /var/www>
    Require all granted
</Directory>
<VirtualHost *:80>
    ServerName only.example.com
</VirtualHost>
`
	blocks := ExtractBlocks(text)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 VirtualHost block, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0].Interior, "only.example.com") {
		t.Errorf("unexpected block: %q", blocks[0].Raw)
	}
}

func TestExtractBlocks_Empty(t *testing.T) {
	if blocks := ExtractBlocks(""); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
	if blocks := ExtractBlocks("# comments only\n"); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}
