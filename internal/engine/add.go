package engine

import (
	"fmt"
	"strings"

	"github.com/ksyq12/vhostcfg/internal/certbot"
	"github.com/ksyq12/vhostcfg/internal/errors"
	"github.com/ksyq12/vhostcfg/internal/logger"
	"github.com/ksyq12/vhostcfg/internal/site"
	"github.com/ksyq12/vhostcfg/internal/template"
)

// AddParams describes a site to create.
type AddParams struct {
	Domain string
	Kind   site.Kind
	Port   int    // proxy kind
	Root   string // static kind

	SkipReload bool
	SkipCert   bool
}

// AddResult reports a committed addition. CertError is the secondary
// error of a partial success: the block is committed even when
// certificate issuance failed afterwards.
type AddResult struct {
	Domain       string
	BlockText    string
	SyntaxOutput string
	CertError    error
}

// RenderBlock produces the block text Add would append, for previews.
func RenderBlock(p AddParams) (string, error) {
	return template.Render(p.Kind, template.BlockData{
		Domain: p.Domain,
		Port:   p.Port,
		Root:   p.Root,
	})
}

// Add appends a new VirtualHost block to the plain-HTTP file, drives it
// through the commit state machine, and then requests a certificate for
// the new domain as a dependent follow-up step.
func (e *Engine) Add(p AddParams) (*AddResult, error) {
	if err := ValidateDomain(p.Domain); err != nil {
		return nil, err
	}
	switch p.Kind {
	case site.KindProxy:
		if err := ValidatePort(p.Port); err != nil {
			return nil, err
		}
	case site.KindStatic:
		if err := ValidateRoot(p.Root); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Validation(fmt.Sprintf("cannot create site of kind %q", p.Kind))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	taken, err := e.declaredDomains()
	if err != nil {
		return nil, err
	}
	if taken[p.Domain] {
		return nil, errors.AlreadyExists(p.Domain)
	}

	block, err := RenderBlock(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to render block", err)
	}

	current, err := readFile(e.opts.HTTPConf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read "+e.opts.HTTPConf, err)
	}
	next := appendBlock(current, block)

	out, err := e.apply(e.opts.HTTPConf, next, applyOptions{
		domain: p.Domain,
		reload: !p.SkipReload,
	})
	if err != nil {
		return nil, err
	}

	result := &AddResult{Domain: p.Domain, BlockText: block, SyntaxOutput: out}

	if !p.SkipCert {
		if _, certErr := certbot.Issue(p.Domain, e.opts.CertbotEmail); certErr != nil {
			logger.Warn("site %s added but certificate issuance failed: %v", p.Domain, certErr)
			result.CertError = errors.Partial(p.Domain, "certificate issuance failed", certErr)
		}
	}

	return result, nil
}

// appendBlock attaches a block to the end of existing file content,
// separated by one blank line. Untouched bytes are preserved exactly.
func appendBlock(current, block string) string {
	if current == "" {
		return block
	}
	if !strings.HasSuffix(current, "\n") {
		current += "\n"
	}
	return current + "\n" + block
}

// declaredDomains collects every name advertised by any block in either
// file.
func (e *Engine) declaredDomains() (map[string]bool, error) {
	taken := make(map[string]bool)
	for _, path := range []string{e.opts.HTTPConf, e.opts.SSLConf} {
		records, err := e.parseFile(path)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			taken[rec.Domain] = true
		}
	}
	return taken, nil
}
