package rewrite

import (
	"fmt"

	"github.com/leapstack-labs/bigsharp/pkg/token"
)

const dictType = "Dictionary<dynamic, dynamic>"

// contains lowers `needle in container`. The needle is the primary
// expression ending just before in. The container decides the shape:
//
//	[a, b] or {a, b}  Enumerable.Contains(new dynamic[]{a, b}, (needle))
//	{k: v, ...}       inline dictionary with a ContainsKey ternary
//	anything else     Enumerable.Contains(container, (needle))
//
// The in of a foreach header is left alone.
func contains(r *run) error {
	s := r.s
	n := 0
	for i := 0; i < s.Len(); i++ {
		if s.Kind(i) != token.In || inForeachHeader(s, i) {
			continue
		}

		end := prev(s, i)
		start := primaryStart(s, end)
		c := next(s, i)
		if start < 0 || s.Kind(c) == token.End {
			continue
		}
		needle := s.Slice(start, end+1)

		var lowered []token.Token
		var last int
		switch s.Kind(c) {
		case token.LBracket, token.LBrace:
			last = s.MatchClose(c)
			items := s.Slice(c+1, last)
			if s.Kind(c) == token.LBrace && hasTop(items, token.Colon) {
				n++
				lowered = lowerDict(items, needle, fmt.Sprintf("__in%d", n))
			} else {
				lowered = lowerList(items, needle)
			}
		default:
			last = primaryEnd(s, c)
			if last < 0 {
				continue
			}
			lowered = enumerableContains(s.Slice(c, last+1), needle)
		}

		i = s.Replace(start, last-start+1, lowered...) - 1
	}
	return nil
}

func enumerableContains(container, needle []token.Token) []token.Token {
	out := []token.Token{raw("Enumerable.Contains"), punct(token.LParen)}
	out = append(out, container...)
	out = append(out, punct(token.Comma), space(), punct(token.LParen))
	out = append(out, needle...)
	return append(out, punct(token.RParen), punct(token.RParen))
}

func lowerList(items, needle []token.Token) []token.Token {
	array := []token.Token{token.Make(token.New, "new"), space(), raw("dynamic[]"), punct(token.LBrace)}
	array = append(array, items...)
	array = append(array, punct(token.RBrace))
	return enumerableContains(array, needle)
}

// lowerDict builds
//
//	(new Dictionary<dynamic, dynamic>{{k, v}} is Dictionary<dynamic, dynamic> tmp
//	    ? tmp.ContainsKey((needle)) : false)
func lowerDict(items, needle []token.Token, tmp string) []token.Token {
	out := []token.Token{punct(token.LParen), token.Make(token.New, "new"), space(), raw(dictType), punct(token.LBrace)}
	for i, entry := range splitTop(items) {
		key, value := splitEntry(trim(entry))
		if i > 0 {
			out = append(out, punct(token.Comma), space())
		}
		out = append(out, punct(token.LBrace))
		out = append(out, key...)
		out = append(out, punct(token.Comma), space())
		out = append(out, value...)
		out = append(out, punct(token.RBrace))
	}
	out = append(out,
		punct(token.RBrace),
		raw(fmt.Sprintf(" is %s %s ? %s.ContainsKey", dictType, tmp, tmp)),
		punct(token.LParen), punct(token.LParen))
	out = append(out, needle...)
	return append(out, punct(token.RParen), punct(token.RParen), raw(" : false"), punct(token.RParen))
}

// splitEntry splits k: v on its first depth-zero colon.
func splitEntry(entry []token.Token) (key, value []token.Token) {
	depth := 0
	for i, t := range entry {
		switch {
		case t.Kind.IsOpen():
			depth++
		case t.Kind.IsClose():
			depth--
		case t.Kind == token.Colon && depth == 0:
			return trim(entry[:i]), trim(entry[i+1:])
		}
	}
	return entry, nil
}

func inForeachHeader(s *token.Stream, i int) bool {
	depth := 0
	for j := i - 1; j >= 0; j-- {
		k := s.Kind(j)
		switch {
		case k.IsClose():
			depth++
		case k.IsOpen():
			if depth == 0 {
				return k == token.LParen && s.Kind(prev(s, j)) == token.Foreach
			}
			depth--
		}
	}
	return false
}

// atom reports whether k can stand alone in a primary expression.
func atom(k token.Kind) bool {
	switch k {
	case token.Number, token.Char, token.String, token.Int, token.Raw, token.Console:
		return true
	}
	return k.IsName()
}

// primaryStart walks back from end over a primary expression such as
// a.b(c)[d] and returns its first index, or -1.
func primaryStart(s *token.Stream, end int) int {
	i := end
	for {
		k := s.Kind(i)
		switch {
		case k.IsClose():
			if i = s.MatchOpen(i); i < 0 {
				return -1
			}
		case k != token.Dot && !atom(k):
			return -1
		}

		k, p := s.Kind(i), s.Kind(i-1)
		chained := p == token.Dot ||
			k == token.Dot && (atom(p) || p.IsClose()) ||
			(k == token.LParen || k == token.LBracket) && (atom(p) || p.IsClose())
		if !chained {
			break
		}
		i--
	}

	if s.At(i-1).IsSpace() && s.Kind(i-2) == token.New {
		i -= 2
	}
	return i
}

// primaryEnd walks forward from start over a primary expression and
// returns its last index, or -1.
func primaryEnd(s *token.Stream, start int) int {
	i := start
	if s.Kind(i) == token.New {
		i = next(s, i)
	}
	for {
		k := s.Kind(i)
		switch {
		case k.IsOpen():
			if i = s.MatchClose(i); i < 0 {
				return -1
			}
		case k != token.Dot && !atom(k):
			return -1
		}

		k, n := s.Kind(i), s.Kind(i+1)
		chained := n == token.Dot || n == token.LParen || n == token.LBracket ||
			k == token.Dot && atom(n)
		if !chained {
			return i
		}
		i++
	}
}
