package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// index turns a literal index a[n] into a[Convert.ToInt32(n)-1]. Array
// type brackets such as dynamic[3] are left alone.
func index(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		if s.Kind(i) != token.LBracket || s.Kind(prev(s, i)).IsDataType() {
			continue
		}
		n := next(s, i)
		if s.Kind(n) != token.Number || s.Kind(next(s, n)) != token.RBracket {
			continue
		}
		i = s.Replace(n, 1,
			raw("Convert.ToInt32("),
			s.At(n),
			raw(")"),
			token.Make(token.Operator, "-"),
			token.Make(token.Int, "1"),
		)
	}
	return nil
}

// cleanup drops the terminator the normalizer leaves after a function's
// closing brace.
func cleanup(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		fn, ok := findFunction(s, i)
		if !ok {
			continue
		}
		closing := s.MatchClose(fn.body)
		if closing < 0 {
			continue
		}
		if semi := next(s, closing); s.Kind(semi) == token.Semicolon {
			s.Remove(semi, 1)
		}
	}
	return nil
}
