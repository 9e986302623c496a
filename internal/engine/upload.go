package engine

import (
	"strings"

	"github.com/ksyq12/vhostcfg/internal/errors"
	"github.com/ksyq12/vhostcfg/internal/logger"
)

// Upload targets.
const (
	TargetHTTP = "http"
	TargetSSL  = "ssl"
)

// UploadResult reports a whole-file replacement. NoOp is true when the
// incoming content already matched the file and nothing was committed.
type UploadResult struct {
	Target       string
	Path         string
	NoOp         bool
	SyntaxOutput string
}

// Upload replaces one managed conf file wholesale with the given content
// and drives it through the commit state machine. Line endings are
// normalized to \n before comparison and before commit, so re-uploading
// the current content, even with foreign line endings, is a no-op that
// touches neither disk nor the running server.
func (e *Engine) Upload(target, content string, reload bool) (*UploadResult, error) {
	var path string
	switch target {
	case TargetHTTP:
		path = e.opts.HTTPConf
	case TargetSSL:
		path = e.opts.SSLConf
	default:
		return nil, errors.Validation("upload target must be \"http\" or \"ssl\", got " + target)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := readFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read "+path, err)
	}

	next := normalizeNewlines(content)
	if next == normalizeNewlines(current) {
		logger.Info("upload of %s matches current content, nothing to do", path)
		return &UploadResult{Target: target, Path: path, NoOp: true}, nil
	}

	out, err := e.apply(path, next, applyOptions{reload: reload})
	if err != nil {
		return nil, err
	}
	return &UploadResult{Target: target, Path: path, SyntaxOutput: out}, nil
}

// normalizeNewlines maps \r\n and bare \r to \n.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
