package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

func raw(text string) token.Token { return token.Make(token.Raw, text) }

func space() token.Token { return token.Make(token.Whitespace, " ") }

func punct(k token.Kind) token.Token {
	text := map[token.Kind]string{
		token.LParen:    "(",
		token.RParen:    ")",
		token.LBrace:    "{",
		token.RBrace:    "}",
		token.LBracket:  "[",
		token.RBracket:  "]",
		token.Comma:     ",",
		token.Semicolon: ";",
		token.Dot:       ".",
	}[k]
	return token.Make(k, text)
}

// prev returns the index of the nearest non-whitespace token before i.
func prev(s *token.Stream, i int) int { return s.Prev(i - 1) }

// next returns the index of the nearest non-whitespace token after i.
func next(s *token.Stream, i int) int { return s.Next(i + 1) }

// trim strips leading and trailing whitespace tokens.
func trim(toks []token.Token) []token.Token {
	for len(toks) > 0 && toks[0].IsSpace() {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].IsSpace() {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// splitTop splits toks on commas at nesting depth zero.
func splitTop(toks []token.Token) [][]token.Token {
	var parts [][]token.Token
	depth, start := 0, 0
	for i, t := range toks {
		switch {
		case t.Kind.IsOpen():
			depth++
		case t.Kind.IsClose():
			depth--
		case t.Kind == token.Comma && depth == 0:
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	return append(parts, toks[start:])
}

// hasTop reports whether toks holds a token of kind k at depth zero.
func hasTop(toks []token.Token, k token.Kind) bool {
	depth := 0
	for _, t := range toks {
		switch {
		case t.Kind.IsOpen():
			depth++
		case t.Kind.IsClose():
			depth--
		case t.Kind == k && depth == 0:
			return true
		}
	}
	return false
}

// statementEnd returns the index of the first semicolon at depth zero at or
// after i, or -1.
func statementEnd(s *token.Stream, i int) int {
	depth := 0
	for ; i < s.Len(); i++ {
		switch k := s.Kind(i); {
		case k.IsOpen():
			depth++
		case k.IsClose():
			depth--
			if depth < 0 {
				return -1
			}
		case k == token.Semicolon && depth == 0:
			return i
		}
	}
	return -1
}
