package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// coalesce merges runs of Unknown tokens. A run spelling a valid
// identifier becomes an Identifier; anything else stays Unknown and is
// rejected by the renderer.
//
// CSharp(...) blocks are folded into a single Raw token first so no later
// pass touches their contents.
func coalesce(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		switch s.Kind(i) {
		case token.Native:
			foldNative(s, i)
		case token.Unknown:
			j := i + 1
			for s.Kind(j) == token.Unknown {
				j++
			}
			t := s.At(i)
			t.Text = token.Join(s.Slice(i, j))
			if token.IsIdent(t.Text) {
				t.Kind = token.Identifier
			}
			s.Replace(i, j-i, t)
		}
	}
	return nil
}

func foldNative(s *token.Stream, i int) {
	open := next(s, i)
	if s.Kind(open) != token.LParen {
		return
	}
	closing := s.MatchClose(open)
	if closing < 0 {
		return
	}
	t := raw(token.Join(s.Slice(open+1, closing)))
	t.Pos = s.At(i).Pos
	s.Replace(i, closing-i+1, t)
}
