package engine

import (
	"fmt"
	"regexp"

	"github.com/ksyq12/vhostcfg/internal/errors"
	"github.com/ksyq12/vhostcfg/internal/httpdconf"
)

// proxyTargetPattern anchors on the routing directives and captures
// everything up to the loopback port so only the port digits change.
var proxyTargetPattern = regexp.MustCompile(`(?m)^(\s*ProxyPass(?:Reverse)?\s+\S+\s+(?:wss?|https?)://(?:127\.0\.0\.1|localhost):)\d+`)

// contentRootPattern anchors on the DocumentRoot directive name.
var contentRootPattern = regexp.MustCompile(`(?m)^(\s*DocumentRoot\s+)\S+`)

// UpdateResult reports a committed update.
type UpdateResult struct {
	Domain       string
	SyntaxOutput string
}

// UpdatePort rewrites the routing-target port of a proxy-backed site.
// Substitution is scoped to the span of the block whose ServerName
// exactly matches the domain.
func (e *Engine) UpdatePort(domain string, port int) (*UpdateResult, error) {
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}
	if err := ValidatePort(port); err != nil {
		return nil, err
	}

	return e.updateBlock(domain, func(raw string, d httpdconf.Directives) string {
		return proxyTargetPattern.ReplaceAllString(raw, fmt.Sprintf("${1}%d", port))
	})
}

// UpdateRoot rewrites the content root of a static or legacy site,
// covering both the DocumentRoot directive and the matching Directory
// sub-block argument.
func (e *Engine) UpdateRoot(domain, root string) (*UpdateResult, error) {
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}
	if err := ValidateRoot(root); err != nil {
		return nil, err
	}

	return e.updateBlock(domain, func(raw string, d httpdconf.Directives) string {
		oldRoot, ok := d.First("DocumentRoot")
		raw = contentRootPattern.ReplaceAllString(raw, "${1}"+root)
		if ok && oldRoot != "" && oldRoot != root {
			dirPattern := regexp.MustCompile(`(?m)^(\s*<Directory\s+)` + regexp.QuoteMeta(oldRoot) + `(\s*>)`)
			raw = dirPattern.ReplaceAllString(raw, "${1}"+root+"${2}")
		}
		return raw
	})
}

// updateBlock locates the block whose declared name exactly equals the
// target, never a substring match, rewrites it with edit, and commits the
// spliced file. No resulting change is reported as not found.
func (e *Engine) updateBlock(domain string, edit func(raw string, d httpdconf.Directives) string) (*UpdateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	content, err := readFile(e.opts.HTTPConf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read "+e.opts.HTTPConf, err)
	}

	for _, block := range httpdconf.ExtractBlocks(content) {
		d := httpdconf.ParseDirectives(block.Interior)
		name, _ := d.First("ServerName")
		if name != domain {
			continue
		}

		next := edit(block.Raw, d)
		if next == block.Raw {
			return nil, &errors.ConfigError{
				Code:    errors.ErrCodeNotFound,
				Message: "not found or no change",
				Domain:  domain,
			}
		}

		spliced := content[:block.Start] + next + content[block.End:]
		out, err := e.apply(e.opts.HTTPConf, spliced, applyOptions{domain: domain, reload: true})
		if err != nil {
			return nil, err
		}
		return &UpdateResult{Domain: domain, SyntaxOutput: out}, nil
	}

	return nil, &errors.ConfigError{
		Code:    errors.ErrCodeNotFound,
		Message: "not found or no change",
		Domain:  domain,
	}
}
