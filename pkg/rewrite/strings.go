package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// wrapStrings rewrites every string literal, with its $ prefix if any, to
// new FastString(...).
func wrapStrings(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		if s.Kind(i) != token.String {
			continue
		}
		start := i
		if s.Kind(i-1) == token.Interpolation {
			start--
		}

		wrapped := []token.Token{token.Make(token.New, "new"), space(), raw("FastString"), punct(token.LParen)}
		wrapped = append(wrapped, s.Slice(start, i+1)...)
		wrapped = append(wrapped, punct(token.RParen))
		i = s.Replace(start, i+1-start, wrapped...) - 1
	}
	return nil
}
