package httpdconf

import "strings"

// virtualHostTag is the one block kind this engine extracts at file level.
const virtualHostTag = "VirtualHost"

// Block is one delimited configuration unit with its raw source span.
type Block struct {
	Name     string // tag name as written in the source
	OpenTag  string // full opening tag, e.g. "<VirtualHost *:80>"
	Interior string // text between the opening and closing tags
	Raw      string // exact source text including both tags
	Start    int    // byte offset of the opening '<'
	End      int    // byte offset just past the closing '>'
}

// ExtractBlocks returns the top-level VirtualHost blocks of a file in
// source order. Blocks with no matching closing tag are not yielded and do
// not disturb extraction of subsequent blocks. Attributes inside the
// opening tag are carried verbatim in OpenTag, not parsed.
func ExtractBlocks(text string) []Block {
	var out []Block
	for _, b := range scanBlocks(text) {
		if strings.EqualFold(b.Name, virtualHostTag) {
			out = append(out, b)
		}
	}
	return out
}

// scanBlocks finds all tag pairs at the top level of text, any name.
// Nested same-name tags are tracked so an inner pair cannot close an
// outer block early.
func scanBlocks(text string) []Block {
	var blocks []Block
	pos := 0
	for pos < len(text) {
		start, name, openEnd, ok := nextOpenTag(text, pos)
		if !ok {
			break
		}

		closeStart, closeEnd, found := findClose(text, openEnd, name)
		if !found {
			// Unterminated block: skip the open tag, keep scanning so
			// later blocks still extract.
			pos = openEnd
			continue
		}

		blocks = append(blocks, Block{
			Name:     name,
			OpenTag:  text[start:openEnd],
			Interior: text[openEnd:closeStart],
			Raw:      text[start:closeEnd],
			Start:    start,
			End:      closeEnd,
		})
		pos = closeEnd
	}
	return blocks
}

// nextOpenTag finds the next opening tag at or after pos. It returns the
// offset of '<', the tag name, and the offset just past the closing '>'.
func nextOpenTag(text string, pos int) (start int, name string, end int, ok bool) {
	for pos < len(text) {
		lt := strings.IndexByte(text[pos:], '<')
		if lt < 0 {
			return 0, "", 0, false
		}
		lt += pos

		i := skipSpaces(text, lt+1)
		if i < len(text) && text[i] == '/' {
			// Stray closing tag, not ours to open.
			pos = lt + 1
			continue
		}

		tagName := readTagName(text, i)
		if tagName == "" {
			pos = lt + 1
			continue
		}

		gt := strings.IndexByte(text[i:], '>')
		if gt < 0 {
			return 0, "", 0, false
		}
		return lt, tagName, i + gt + 1, true
	}
	return 0, "", 0, false
}

// findClose locates the closing tag matching name, starting at pos.
// It returns the offset of the closing '<' and the offset just past its '>'.
func findClose(text string, pos int, name string) (closeStart, closeEnd int, found bool) {
	depth := 1
	for pos < len(text) {
		lt := strings.IndexByte(text[pos:], '<')
		if lt < 0 {
			return 0, 0, false
		}
		lt += pos

		i := skipSpaces(text, lt+1)
		closing := false
		if i < len(text) && text[i] == '/' {
			closing = true
			i = skipSpaces(text, i+1)
		}

		tagName := readTagName(text, i)
		if !strings.EqualFold(tagName, name) {
			pos = lt + 1
			continue
		}

		gt := strings.IndexByte(text[i:], '>')
		if gt < 0 {
			return 0, 0, false
		}
		end := i + gt + 1

		if closing {
			depth--
			if depth == 0 {
				return lt, end, true
			}
		} else {
			depth++
		}
		pos = end
	}
	return 0, 0, false
}

// skipSpaces advances past spaces and tabs.
func skipSpaces(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}

// readTagName reads a tag name starting at i. Tag names start with a
// letter and continue with letters and digits.
func readTagName(text string, i int) string {
	start := i
	for i < len(text) {
		c := text[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > start && c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return text[start:i]
}
