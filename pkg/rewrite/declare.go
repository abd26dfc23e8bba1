package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// declare tags the name after a data type keyword as a Variable, or a
// Method when a parameter list follows, and gives every later use of the
// same name the same tag.
func declare(r *run) error {
	s := r.s
	tags := make(map[string]token.Kind)

	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		switch {
		case t.Kind.IsDataType():
			if !s.At(i + 1).IsSpace() {
				continue
			}
			n := next(s, i)
			if !s.At(n).Kind.IsName() {
				continue
			}
			kind := token.Variable
			if s.Kind(next(s, n)) == token.LParen {
				kind = token.Method
			}
			tags[s.At(n).Text] = kind

		case t.Kind.IsName():
			if kind, ok := tags[t.Text]; ok && kind != t.Kind {
				t.Kind = kind
				s.Set(i, t)
			}
		}
	}
	return nil
}
