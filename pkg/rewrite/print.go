package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// printCalls qualifies bare WriteLine and Write calls with Console and
// passes their single argument through Convert.ToString.
func printCalls(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		cmd := s.At(i)
		if cmd.Kind != token.WriteLine && cmd.Kind != token.Write {
			continue
		}
		if s.Kind(prev(s, i)) == token.Dot {
			continue
		}
		open := next(s, i)
		if s.Kind(open) != token.LParen {
			continue
		}
		closing := s.MatchClose(open)
		arg := trim(s.Slice(open+1, closing))
		if len(arg) == 0 || hasTop(arg, token.Comma) {
			continue
		}

		call := []token.Token{
			token.Make(token.Console, "Console"),
			punct(token.Dot),
			cmd,
			punct(token.LParen),
			raw("Convert.ToString"),
			punct(token.LParen),
		}
		call = append(call, arg...)
		call = append(call, punct(token.RParen), punct(token.RParen))
		i = s.Replace(i, closing-i+1, call...) - 1
	}
	return nil
}
