// Package scrape extracts price fields from FFXIAH item pages. The pages are
// not well-formed structured data (the interesting values live in script
// literals embedded in the document), so extraction is marker-based scanning
// over byte offsets rather than DOM or JSON parsing.
package scrape

import (
	"strconv"
	"strings"
)

// arraySpan returns the text between the '[' following marker and the "];"
// closing token.
func arraySpan(payload, marker string) (string, bool) {
	start := strings.Index(payload, marker)
	if start < 0 {
		return "", false
	}
	open := strings.IndexByte(payload[start:], '[')
	if open < 0 {
		return "", false
	}
	open += start
	end := strings.Index(payload[open:], "];")
	if end < 0 {
		return "", false
	}
	return payload[open+1 : open+end], true
}

// objects yields the top-level {...} blocks of an array span. Brace depth is
// tracked so a nested object stays inside its parent block.
func objects(list string) []string {
	var blocks []string
	depth := 0
	start := -1
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					blocks = append(blocks, list[start:i+1])
					start = -1
				}
			}
		}
	}
	return blocks
}

// digitRun returns the unbroken run of decimal digits starting at pos.
func digitRun(s string, pos int) string {
	end := pos
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[pos:end]
}

// intField extracts the non-negative integer following key inside obj.
// Returns -1 when the key is absent or carries no digits.
func intField(obj, key string) int64 {
	pos := strings.Index(obj, key)
	if pos < 0 {
		return -1
	}
	digits := digitRun(obj, pos+len(key))
	if digits == "" {
		return -1
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return -1
	}
	return v
}

// stringField extracts the double-quoted value following key inside obj.
func stringField(obj, key string) (string, bool) {
	pos := strings.Index(obj, key)
	if pos < 0 {
		return "", false
	}
	pos += len(key)
	end := strings.IndexByte(obj[pos:], '"')
	if end <= 0 {
		return "", false
	}
	return obj[pos : pos+end], true
}

// indexFold is an ASCII case-insensitive strings.Index. The markers it is
// used for are plain ASCII, so byte-wise folding is safe.
func indexFold(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(s); i++ {
		if foldEqual(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func foldEqual(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
