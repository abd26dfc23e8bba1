package token

import (
	"fmt"
	"slices"
	"strings"
)

// Stream is an owned, growable token buffer. Edits go through Insert,
// Remove and Replace, which return the cursor position to continue from so
// callers never track index drift by hand.
//
// A stream produced by the lexer always ends with an End token.
type Stream struct {
	toks      []Token
	rewritten bool
}

// NewStream returns a stream over a copy of toks.
func NewStream(toks []Token) *Stream {
	return &Stream{toks: slices.Clone(toks)}
}

// Len returns the number of tokens, including the End token.
func (s *Stream) Len() int { return len(s.toks) }

// At returns the token at i, or an End token when i is out of range.
func (s *Stream) At(i int) Token {
	if i < 0 || i >= len(s.toks) {
		return Token{Kind: End}
	}
	return s.toks[i]
}

// Kind returns the kind of the token at i.
func (s *Stream) Kind(i int) Kind { return s.At(i).Kind }

// Set overwrites the token at i.
func (s *Stream) Set(i int, t Token) { s.toks[i] = t }

// Tokens returns a copy of the buffer.
func (s *Stream) Tokens() []Token { return slices.Clone(s.toks) }

// Slice returns a copy of the tokens in [i, j).
func (s *Stream) Slice(i, j int) []Token {
	return slices.Clone(s.toks[i:j])
}

// Insert inserts toks before position i and returns the position just past
// the inserted tokens.
func (s *Stream) Insert(i int, toks ...Token) int {
	s.toks = slices.Insert(s.toks, i, toks...)
	return i + len(toks)
}

// Remove deletes n tokens starting at i and returns i.
func (s *Stream) Remove(i, n int) int {
	s.toks = slices.Delete(s.toks, i, i+n)
	return i
}

// Replace swaps the n tokens at i for toks and returns the position just
// past the replacement.
func (s *Stream) Replace(i, n int, toks ...Token) int {
	s.toks = slices.Replace(s.toks, i, i+n, toks...)
	return i + len(toks)
}

// Next returns the index of the first non-whitespace token at or after i,
// or Len() if there is none.
func (s *Stream) Next(i int) int {
	for i < len(s.toks) && s.toks[i].Kind == Whitespace {
		i++
	}
	return i
}

// Prev returns the index of the last non-whitespace token at or before i,
// or -1 if there is none.
func (s *Stream) Prev(i int) int {
	for i >= 0 && i < len(s.toks) && s.toks[i].Kind == Whitespace {
		i--
	}
	if i >= len(s.toks) {
		return s.Prev(len(s.toks) - 1)
	}
	return i
}

// Find returns the index of the first token of kind k at or after i, or -1.
func (s *Stream) Find(i int, k Kind) int {
	for ; i < len(s.toks); i++ {
		if s.toks[i].Kind == k {
			return i
		}
	}
	return -1
}

// MatchClose returns the index of the bracket closing the one opened at i,
// or -1 if it is never closed.
func (s *Stream) MatchClose(i int) int {
	if !s.At(i).Kind.IsOpen() {
		return -1
	}
	depth := 0
	for j := i; j < len(s.toks); j++ {
		switch k := s.toks[j].Kind; {
		case k.IsOpen():
			depth++
		case k.IsClose():
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// MatchOpen returns the index of the bracket opening the one closed at i,
// or -1.
func (s *Stream) MatchOpen(i int) int {
	if !s.At(i).Kind.IsClose() {
		return -1
	}
	depth := 0
	for j := i; j >= 0; j-- {
		switch k := s.toks[j].Kind; {
		case k.IsClose():
			depth++
		case k.IsOpen():
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// Balance reasons reported by CheckBalance.
const (
	ReasonCloseFirst = "closing %q at start of input"
	ReasonNotOpened  = "closing %q was never opened"
	ReasonMismatch   = "closing %q does not match %q"
	ReasonNotClosed  = "%q is never closed"
)

// CheckBalance verifies that brackets nest correctly. On failure it returns
// the offending token and a description.
func (s *Stream) CheckBalance() (Token, string, bool) {
	return CheckBalance(s.toks)
}

// CheckBalance verifies that brackets in toks nest correctly.
func CheckBalance(toks []Token) (Token, string, bool) {
	var stack []Token
	for i, t := range toks {
		switch {
		case t.Kind.IsOpen():
			stack = append(stack, t)
		case t.Kind.IsClose():
			if i == 0 {
				return t, fmt.Sprintf(ReasonCloseFirst, t.Text), false
			}
			if len(stack) == 0 {
				return t, fmt.Sprintf(ReasonNotOpened, t.Text), false
			}
			top := stack[len(stack)-1]
			if top.Kind.Closer() != t.Kind {
				return t, fmt.Sprintf(ReasonMismatch, t.Text, top.Text), false
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		t := stack[len(stack)-1]
		return t, fmt.Sprintf(ReasonNotClosed, t.Text), false
	}
	return Token{}, "", true
}

// MarkRewritten flags the stream as rewritten. It returns false if the
// stream was already flagged.
func (s *Stream) MarkRewritten() bool {
	if s.rewritten {
		return false
	}
	s.rewritten = true
	return true
}

// Text concatenates the raw text of every token.
func (s *Stream) Text() string {
	return Join(s.toks)
}

// Join concatenates the raw text of toks.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

// EmitAll concatenates the target-language text of toks.
func EmitAll(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Emit())
	}
	return b.String()
}
