package engine

import (
	"sort"
	"strings"

	"github.com/ksyq12/vhostcfg/internal/errors"
	"github.com/ksyq12/vhostcfg/internal/httpdconf"
)

// RemoveResult reports which files a removal touched.
type RemoveResult struct {
	Domain       string
	FilesChanged []string
	SyntaxOutput string
}

// Remove deletes every block advertising the domain from both conf
// files. Matching is against the block's declared name set: removing
// api.example.com never touches a block that only declares example.com.
// Blocks are spliced out by source offset, not by content matching, so an
// adjacent unrelated block can never be swallowed. A syntax-check
// complaint about missing certificate material is tolerated: the
// certificate may already be gone.
func (e *Engine) Remove(domain string, reload bool) (*RemoveResult, error) {
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result := &RemoveResult{Domain: domain}

	for _, path := range []string{e.opts.HTTPConf, e.opts.SSLConf} {
		content, err := readFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read "+path, err)
		}

		next, changed := spliceOutDomain(content, domain)
		if !changed {
			continue
		}

		out, err := e.apply(path, next, applyOptions{
			domain:              domain,
			reload:              reload,
			tolerateMissingCert: true,
		})
		if err != nil {
			return nil, err
		}
		result.FilesChanged = append(result.FilesChanged, path)
		result.SyntaxOutput = out
	}

	if len(result.FilesChanged) == 0 {
		return nil, errors.NotFound(domain)
	}
	return result, nil
}

// spliceOutDomain removes every block whose declared name set contains
// domain, splicing by offset in reverse so earlier offsets stay valid.
func spliceOutDomain(content, domain string) (string, bool) {
	blocks := httpdconf.ExtractBlocks(content)

	var doomed []httpdconf.Block
	for _, block := range blocks {
		if declaredNames(block)[domain] {
			doomed = append(doomed, block)
		}
	}
	if len(doomed) == 0 {
		return content, false
	}

	sort.Slice(doomed, func(i, j int) bool { return doomed[i].Start > doomed[j].Start })
	for _, block := range doomed {
		end := block.End
		// Swallow the line break that followed the closing tag.
		if end < len(content) && content[end] == '\n' {
			end++
		}
		content = content[:block.Start] + content[end:]
	}
	return content, true
}

// declaredNames returns the set of names a block advertises: its
// ServerName plus every ServerAlias entry.
func declaredNames(block httpdconf.Block) map[string]bool {
	d := httpdconf.ParseDirectives(block.Interior)
	names := make(map[string]bool)
	if primary, ok := d.First("ServerName"); ok && primary != "" {
		names[primary] = true
	}
	for _, line := range d.Get("ServerAlias") {
		for _, name := range strings.Fields(line) {
			names[name] = true
		}
	}
	return names
}
