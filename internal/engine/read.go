package engine

import (
	"github.com/ksyq12/vhostcfg/internal/certbot"
	"github.com/ksyq12/vhostcfg/internal/errors"
	"github.com/ksyq12/vhostcfg/internal/httpdconf"
	"github.com/ksyq12/vhostcfg/internal/site"
)

// List rebuilds the full classified record set from the conf files.
// Stateless: every call re-reads the files, merges the TLS copies,
// classifies parent/child relations over the merged set, and folds in
// certbot's renewal bookkeeping. Safe to call concurrently.
func (e *Engine) List() ([]*site.Record, error) {
	httpRecords, err := e.parseFile(e.opts.HTTPConf)
	if err != nil {
		return nil, err
	}
	tlsRecords, err := e.parseFile(e.opts.SSLConf)
	if err != nil {
		return nil, err
	}

	records := site.Merge(httpRecords, tlsRecords)
	site.Classify(records)

	renewal, err := certbot.LoadRenewalInfo(e.opts.RenewalDir, e.now())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSSL, "failed to read renewal directory", err)
	}
	for _, rec := range records {
		info, ok := renewal[rec.Domain]
		if !ok || !rec.TLS.Enabled {
			continue
		}
		expires := info.ExpiresAt
		days := info.DaysRemaining
		rec.TLS.ExpiresAt = &expires
		rec.TLS.DaysRemaining = &days
		rec.TLS.Status = site.TLSStatus(info.Status)
	}

	return records, nil
}

// Get returns the record for one domain from the merged set.
func (e *Engine) Get(domain string) (*site.Record, error) {
	records, err := e.List()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Domain == domain {
			return rec, nil
		}
	}
	return nil, errors.NotFound(domain)
}

// parseFile extracts and builds records from one conf file. A missing
// file yields no records.
func (e *Engine) parseFile(path string) ([]*site.Record, error) {
	text, err := readFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read "+path, err)
	}

	var records []*site.Record
	for _, block := range httpdconf.ExtractBlocks(text) {
		d := httpdconf.ParseDirectives(block.Interior)
		records = append(records, site.BuildAll(d, block.Raw)...)
	}
	return records, nil
}
