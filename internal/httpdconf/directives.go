package httpdconf

import "strings"

// Directives maps a lower-cased directive name to its values in source
// order. A directive may repeat; repeated occurrences append. Built fresh
// per block, never shared.
type Directives map[string][]string

// Get returns all values for a directive name.
func (d Directives) Get(name string) []string {
	return d[strings.ToLower(name)]
}

// First returns the first value for a directive name.
func (d Directives) First(name string) (string, bool) {
	values := d[strings.ToLower(name)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Has reports whether a directive appears at least once.
func (d Directives) Has(name string) bool {
	return len(d[strings.ToLower(name)]) > 0
}

func (d Directives) add(name, value string) {
	key := strings.ToLower(name)
	d[key] = append(d[key], value)
}

// directiveState is the accumulator for the line scan: idle until a
// directive line is seen, accumulating while continuation markers keep the
// value open.
type directiveState struct {
	name   string
	parts  []string
	active bool
}

func (s *directiveState) commit(d Directives) {
	if !s.active {
		return
	}
	d.add(s.name, strings.Join(s.parts, " "))
	s.name = ""
	s.parts = nil
	s.active = false
}

// ParseDirectives tokenizes one block interior into a Directives map.
//
// Lines are comment-stripped and trimmed; a value whose trailing character
// is a backslash continues on the next line, fragments joined by single
// spaces. Blank lines force-commit a pending directive; so do sub-block
// tag lines and the end of the text. Directives inside nested sub-blocks
// are merged into the same map as top-level ones.
func ParseDirectives(text string) Directives {
	d := make(Directives)
	parseInto(d, text)
	return d
}

func parseInto(d Directives, text string) {
	state := &directiveState{}
	depth := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(stripComment(raw))

		// Sub-block tags bound a region the top-level scan skips; the
		// recursive pass below picks those directives up instead. Opens
		// and closes are counted across the whole line, so a sub-block
		// opened and closed on one line nets to zero. A tag line also
		// terminates a pending continuation.
		if strings.HasPrefix(line, "<") {
			state.commit(d)
			depth += tagDelta(line)
			if depth < 0 {
				depth = 0
			}
			continue
		}

		if state.active {
			if line == "" {
				state.commit(d)
				continue
			}
			frag, more := cutContinuation(line)
			if frag != "" {
				state.parts = append(state.parts, frag)
			}
			if !more {
				state.commit(d)
			}
			continue
		}

		if line == "" {
			continue
		}

		if depth > 0 {
			continue
		}

		name, rest, ok := splitDirective(line)
		if !ok {
			continue
		}

		frag, more := cutContinuation(rest)
		if !more {
			d.add(name, frag)
			continue
		}
		state.name = name
		state.active = true
		if frag != "" {
			state.parts = append(state.parts, frag)
		}
	}
	// Unterminated continuation at end-of-text commits what accumulated.
	state.commit(d)

	for _, sub := range scanBlocks(text) {
		parseInto(d, sub.Interior)
	}
}

// tagDelta counts sub-block tags opened minus closed on one line. Only a
// '<' introducing a plausible tag (a name, or '/' then a name) counts.
func tagDelta(line string) int {
	delta := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '<' {
			continue
		}
		j := skipSpaces(line, i+1)
		if j < len(line) && line[j] == '/' {
			j = skipSpaces(line, j+1)
			if readTagName(line, j) != "" {
				delta--
			}
			continue
		}
		if readTagName(line, j) != "" {
			delta++
		}
	}
	return delta
}

// stripComment removes everything from the first unescaped '#' onward and
// unescapes any remaining '\#' sequences.
func stripComment(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}
		if c == '#' {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

// cutContinuation strips a trailing continuation marker. more is true when
// the value continues on the next line.
func cutContinuation(value string) (frag string, more bool) {
	if strings.HasSuffix(value, "\\") {
		return strings.TrimSpace(strings.TrimSuffix(value, "\\")), true
	}
	return value, false
}

// splitDirective separates a directive line into its case-folded name and
// value. A directive with no value is legal (value = empty string).
func splitDirective(line string) (name, rest string, ok bool) {
	i := 0
	for i < len(line) && line[i] != ' ' && line[i] != '\t' {
		i++
	}
	word := line[:i]
	if !isDirectiveName(word) {
		return "", "", false
	}
	return strings.ToLower(word), strings.TrimSpace(line[i:]), true
}

func isDirectiveName(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '_'):
		default:
			return false
		}
	}
	return true
}
