package rewrite

import "github.com/leapstack-labs/bigsharp/pkg/token"

// checks enforces single assignment of constants and forbids goto in
// source. A constant is bound by `x = const(...)`; the const keyword is
// dropped and x is tracked by name from then on.
func checks(r *run) error {
	s := r.s
	constants := make(map[string]bool)

	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		switch t.Kind {
		case token.Goto:
			if !t.Synthetic {
				return r.fail(t, ErrDirectGoto)
			}

		case token.Assign:
			target := prev(s, i)
			if s.Kind(target) == token.Operator { // compound assignment
				target = prev(s, target)
			}
			name := s.At(target)
			if !name.Kind.IsName() || s.Kind(target-1) == token.Dot {
				continue
			}
			if constants[name.Text] {
				return r.fail(name, ErrConstantReassigned, name.Text)
			}

			c := next(s, i)
			if s.Kind(c) == token.Const && s.Kind(next(s, c)) == token.LParen {
				constants[name.Text] = true
				s.Remove(c, 1)
			}
		}
	}
	return nil
}

// jumps turns `break label;` and `continue label;` into `goto label;`.
func jumps(r *run) error {
	s := r.s
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.Break && t.Kind != token.Continue {
			continue
		}
		label := i + 1
		if s.At(label).IsSpace() {
			label++
		}
		if s.Kind(label) != token.Identifier || s.Kind(label+1) != token.Semicolon {
			continue
		}
		g := token.Make(token.Goto, "goto")
		g.Pos = t.Pos
		s.Set(i, g)
	}
	return nil
}
