package token

import (
	"slices"
	"strings"
)

// Entry is a fixed spelling recognized by the lexer.
type Entry struct {
	Text string
	Kind Kind
	Own  Ownership
}

// Wordlike reports whether the entry ends in an identifier character and
// must therefore not be glued to a neighbouring identifier.
func (e Entry) Wordlike() bool {
	return IsIdentByte(e.Text[len(e.Text)-1])
}

var operators = []Entry{
	{"**", Operator, Expression},
	{"^", Operator, Expression},
	{"&&", Operator, Expression},
	{"||", Operator, Expression},
	{"==", Compare, Expression},
	{"!=", Compare, Expression},
	{"<=", Compare, Expression},
	{">=", Compare, Expression},
	{"=>", Arrow, Default},
	{"-", Operator, Expression},
	{"+", Operator, Expression},
	{"/", Operator, Expression},
	{"*", Operator, Expression},
	{`\`, Operator, Expression},
	{"%", Operator, Expression},
	{"!", Operator, Expression},
}

var membership = []Entry{
	{"in", In, Word},
	{"is", Is, Word},
	{"?", Question, Word},
}

var commands = []Entry{
	{"WriteLine", WriteLine, Command},
	{"Write", Write, Command},
	{"CSharp", Native, Command},
	{"Contains", Contains, Command},
}

var words = []Entry{
	{"goto", Goto, Word},
	{"break", Break, Word},
	{"continue", Continue, Word},
	{"new", New, Word},
	{"const", Const, Word},
	{"if", If, Word},
	{"elif", Elif, Word},
	{"else", Else, Word},
	{"return", Return, Word},
	{"enum", Enum, Word},
	{"foreach", Foreach, Word},
}

var dataTypes = []Entry{
	{"void", Void, Command},
	{"dynamic", Dynamic, Command},
	{"var", Var, Command},
	{"Dictionary", Dictionary, Command},
}

var attributes = []Entry{
	{"[Optimized]", Optimized, Command},
}

var classes = []Entry{
	{"Console", Console, Word},
}

var prefixes = []Entry{
	{"$", Interpolation, Word},
}

// entries holds every table, longest spelling first.
var entries = func() []Entry {
	var all []Entry
	for _, table := range [][]Entry{operators, membership, commands, words, dataTypes, attributes, classes, prefixes} {
		all = append(all, table...)
	}
	slices.SortStableFunc(all, func(a, b Entry) int {
		return len(b.Text) - len(a.Text)
	})
	return all
}()

var byKind = func() map[Kind]Entry {
	m := make(map[Kind]Entry, len(entries))
	for _, e := range entries {
		if _, ok := m[e.Kind]; !ok {
			m[e.Kind] = e
		}
	}
	return m
}()

// Entries returns every fixed spelling, longest first.
func Entries() []Entry {
	return slices.Clone(entries)
}

// Match returns the longest entry that prefixes s and is accepted by
// accept. A nil accept takes the first prefix found.
func Match(s string, accept func(Entry) bool) (Entry, bool) {
	for _, e := range entries {
		if strings.HasPrefix(s, e.Text) && (accept == nil || accept(e)) {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup returns the entry spelled exactly text.
func Lookup(text string) (Entry, bool) {
	for _, e := range entries {
		if e.Text == text {
			return e, true
		}
	}
	return Entry{}, false
}

// IsIdentByte reports whether b can appear in an identifier.
func IsIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// IsIdent reports whether s is a valid identifier.
func IsIdent(s string) bool {
	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsIdentByte(s[i]) {
			return false
		}
	}
	return true
}
