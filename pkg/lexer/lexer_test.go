package lexer

import (
	"testing"

	"github.com/leapstack-labs/bigsharp/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kinds returns the kinds of the non-whitespace tokens, without End.
func kinds(s *token.Stream) []token.Kind {
	var out []token.Kind
	for _, t := range s.Tokens() {
		if t.Kind != token.Whitespace && t.Kind != token.End {
			out = append(out, t.Kind)
		}
	}
	return out
}

func texts(s *token.Stream) []string {
	var out []string
	for _, t := range s.Tokens() {
		if t.Kind != token.Whitespace && t.Kind != token.End {
			out = append(out, t.Text)
		}
	}
	return out
}

func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{
			name:     "declaration",
			input:    "dynamic x = 1;",
			expected: []token.Kind{token.Dynamic, token.Unknown, token.Assign, token.Number, token.Semicolon},
		},
		{
			name:  "punctuation",
			input: "(){}[],;=<>.:",
			expected: []token.Kind{
				token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
				token.Comma, token.Semicolon, token.Assign, token.LAngle, token.RAngle, token.Dot, token.Colon,
			},
		},
		{
			name:     "operators longest first",
			input:    "a ** b == c <= d => e",
			expected: []token.Kind{token.Unknown, token.Operator, token.Unknown, token.Compare, token.Unknown, token.Compare, token.Unknown, token.Arrow, token.Unknown},
		},
		{
			name:     "keywords",
			input:    "if elif else return goto break continue new const enum foreach",
			expected: []token.Kind{token.If, token.Elif, token.Else, token.Return, token.Goto, token.Break, token.Continue, token.New, token.Const, token.Enum, token.Foreach},
		},
		{
			name:     "commands",
			input:    "WriteLine Write CSharp Contains Console",
			expected: []token.Kind{token.WriteLine, token.Write, token.Native, token.Contains, token.Console},
		},
		{
			name:     "attribute before bracket",
			input:    "[Optimized] a[1]",
			expected: []token.Kind{token.Optimized, token.Unknown, token.LBracket, token.Number, token.RBracket},
		},
		{
			name:     "membership",
			input:    "x in y is z ? 1 : 2",
			expected: []token.Kind{token.Unknown, token.In, token.Unknown, token.Is, token.Unknown, token.Question, token.Number, token.Colon, token.Number},
		},
		{
			name:     "interpolation prefix",
			input:    `$"a"`,
			expected: []token.Kind{token.Interpolation, token.String},
		},
		{
			name:     "char literal",
			input:    `'a' '\n'`,
			expected: []token.Kind{token.Char, token.Char},
		},
		{
			name:     "datatypes",
			input:    "void dynamic var Dictionary",
			expected: []token.Kind{token.Void, token.Dynamic, token.Var, token.Dictionary},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kinds(s))
			assert.Equal(t, token.End, s.At(s.Len()-1).Kind)
		})
	}
}

func TestTokenize_KeywordBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"prefix of identifier", "index"},
		{"suffix of identifier", "main"},
		{"longer command", "WriteLines"},
		{"datatype prefix", "variable"},
		{"word inside", "pin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Tokenize(tt.input)
			require.NoError(t, err)
			for _, k := range kinds(s) {
				assert.Equal(t, token.Unknown, k)
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		texts  []string
		values []string
	}{
		{"integer", "42", []string{"42"}, []string{"42"}},
		{"decimal", "3.25", []string{"3.25"}, []string{"3.25"}},
		{"underscores", "1_000_000", []string{"1_000_000"}, []string{"1000000"}},
		{"negative at start", "-5", []string{"-5"}, []string{"-5"}},
		{"negative after assign", "x = -2.5", []string{"x", "=", "-2.5"}, []string{"-2.5"}},
		{"subtraction", "x -2", []string{"x", "-", "2"}, []string{"2"}},
		{"second separator ends literal", "1.2.3", []string{"1.2", ".", "3"}, []string{"1.2", "3"}},
		{"separator needs digit", "1.ToString", []string{"1", ".", "T", "o", "S", "t", "r", "i", "n", "g"}, []string{"1"}},
		{"second minus ends literal", "-1-2", []string{"-1", "-", "2"}, []string{"-1", "2"}},
		{"digit inside identifier", "x1", []string{"x", "1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.texts, texts(s))

			var values []string
			for _, tok := range s.Tokens() {
				if tok.Kind != token.Number {
					continue
				}
				d, ok := tok.Value.AsNumber()
				require.True(t, ok)
				assert.Equal(t, token.Expression, tok.Own)
				values = append(values, d.String())
			}
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestTokenize_Literals(t *testing.T) {
	s, err := Tokenize(`"say \"hi\"" 'x' '\t'`)
	require.NoError(t, err)
	toks := s.Tokens()

	assert.Equal(t, token.String, toks[0].Kind)
	assert.Equal(t, `"say \"hi\""`, toks[0].Text)
	str, ok := toks[0].Value.AsString()
	require.True(t, ok)
	assert.Equal(t, `say \"hi\"`, str)

	r, ok := toks[2].Value.AsChar()
	require.True(t, ok)
	assert.Equal(t, 'x', r)

	r, ok = toks[4].Value.AsChar()
	require.True(t, ok)
	assert.Equal(t, '\t', r)
}

func TestTokenize_Positions(t *testing.T) {
	s, err := Tokenize("a;\nb;")
	require.NoError(t, err)
	toks := s.Tokens()
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, 2, toks[3].Pos.Line)
	assert.Equal(t, 4, toks[3].Pos.Offset)
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unmatched open paren", "f(1;", `"(" is never closed`},
		{"close paren first", ")", `closing ")" at start of input`},
		{"close before open", "a)(", `closing ")" was never opened`},
		{"mismatched pair", "(]", `closing "]" does not match "("`},
		{"unclosed brace", "if (x) {", `"{" is never closed`},
		{"unterminated string", `"abc`, ErrUnterminatedString},
		{"unterminated char", `'a`, ErrUnterminatedChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.message, lexErr.Message)
		})
	}
}

func TestValidate_ExpressionOwnership(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		grouping bool
	}{
		{"grouping after operator", "2 * (3 + 4)", true},
		{"grouping before operator", "(1 + 2) * 3", true},
		{"condition header", "if (x > 1) {}", false},
		{"call arguments", "f(1);", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Tokenize(tt.input)
			require.NoError(t, err)
			for _, tok := range s.Tokens() {
				if tok.Kind == token.LParen || tok.Kind == token.RParen {
					assert.Equal(t, tt.grouping, tok.Own == token.Expression, "%s", tok)
				}
			}
		})
	}
}
