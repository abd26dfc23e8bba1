package lexer

import "github.com/leapstack-labs/bigsharp/pkg/token"

// Validate checks that brackets nest correctly across the whole stream and
// tags grouping parentheses with Expression ownership. A parenthesis is a
// grouping one when the nearest non-whitespace tokens on both sides are
// Expression-owned; the tag is copied to its partner.
func Validate(s *token.Stream) error {
	if bad, reason, ok := s.CheckBalance(); !ok {
		return &LexError{Pos: bad.Pos, Message: reason}
	}

	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.LParen && t.Kind != token.RParen || t.Own == token.Expression {
			continue
		}
		before, after := s.At(s.Prev(i-1)), s.At(s.Next(i+1))
		if before.Own != token.Expression || after.Own != token.Expression {
			continue
		}

		partner := s.MatchClose(i)
		if t.Kind == token.RParen {
			partner = s.MatchOpen(i)
		}
		tagExpression(s, i)
		tagExpression(s, partner)
	}
	return nil
}

func tagExpression(s *token.Stream, i int) {
	if i < 0 {
		return
	}
	t := s.At(i)
	t.Own = token.Expression
	s.Set(i, t)
}
