package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// blocks wraps single-statement if, elif and else bodies in braces. The
// closing brace goes after the first terminator at the body's depth.
func blocks(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		k := s.Kind(i)
		if k != token.If && k != token.Elif && k != token.Else {
			continue
		}

		body := next(s, i)
		if k != token.Else {
			closing := s.MatchClose(body)
			if s.Kind(body) != token.LParen || closing < 0 {
				continue
			}
			body = next(s, closing)
		}

		switch s.Kind(body) {
		case token.LBrace, token.If, token.End:
			continue
		}
		end := statementEnd(s, body)
		if end < 0 {
			continue
		}
		s.Insert(end+1, punct(token.RBrace))
		s.Insert(body, punct(token.LBrace))
	}
	return nil
}
