package lang

import (
	"strings"
	"unicode"
)

// token is a whitespace-delimited field of a line together with its byte
// offsets in that line.
type token struct {
	text       string
	start, end int
}

// tokenize splits line on Unicode whitespace, like [strings.Fields], keeping
// the offsets of each field.
func tokenize(line string) []token {
	var (
		toks  []token
		start = -1
	)

	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, token{line[start:i], start, i})
				start = -1
			}

			continue
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		toks = append(toks, token{line[start:], start, len(line)})
	}

	return toks
}

// quoted returns the text between the first and last double quote in s, and
// the offset of that last quote. No escapes are recognized.
func quoted(s string) (text string, end int, err error) {
	first := strings.IndexByte(s, '"')
	if first < 0 {
		return "", -1, ErrMissingQuote
	}

	last := strings.LastIndexByte(s, '"')
	if last == first {
		return "", -1, ErrUnterminatedString
	}

	return s[first+1 : last], last, nil
}

// unquote strips the enclosing double quotes from s when they are the only
// two quotes in it.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' &&
		strings.Count(s, `"`) == 2 {
		return s[1 : len(s)-1]
	}

	return s
}

// isName reports whether s can name a variable: non-empty and free of
// whitespace.
func isName(s string) bool {
	return s != "" && strings.IndexFunc(s, unicode.IsSpace) < 0
}
