package sexpr

import (
	"unicode"
	"unicode/utf8"
)

// Token is a lexeme and the byte offset where it starts.
type Token struct {
	Text   string
	Offset int
}

// Tokenize splits src into tokens. Each parenthesis is its own token, as
// is a quote that starts a run; every other maximal run of non-space
// characters is one token. Tokenizing never fails.
func Tokenize(src string) []Token {
	var tokens []Token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, Token{Text: src[start:end], Offset: start})
			start = -1
		}
	}
	for pos := 0; pos < len(src); {
		r, w := utf8.DecodeRuneInString(src[pos:])
		switch {
		case unicode.IsSpace(r):
			flush(pos)
		case r == '(' || r == ')':
			flush(pos)
			tokens = append(tokens, Token{Text: src[pos : pos+w], Offset: pos})
		case r == '\'' && start < 0:
			tokens = append(tokens, Token{Text: "'", Offset: pos})
		default:
			if start < 0 {
				start = pos
			}
		}
		pos += w
	}
	flush(len(src))
	return tokens
}
