// Package template renders VirtualHost block text for new sites.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/ksyq12/vhostcfg/internal/site"
)

//go:embed blocks/*.tmpl
var blockTemplates embed.FS

// BlockData parameterizes a rendered block. Port applies to the proxy
// template, Root to the static one.
type BlockData struct {
	Domain string
	Port   int
	Root   string
}

// Render produces the block text for a new site of the given kind.
// Legacy sites are listed but never created, so only proxy and static
// have templates.
func Render(kind site.Kind, data BlockData) (string, error) {
	var name string
	switch kind {
	case site.KindProxy:
		name = "proxy"
	case site.KindStatic:
		name = "static"
	default:
		return "", fmt.Errorf("no template for kind %s", kind)
	}

	content, err := blockTemplates.ReadFile(fmt.Sprintf("blocks/%s.tmpl", name))
	if err != nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}
