package render

import (
	"testing"

	"github.com/leapstack-labs/bigsharp/pkg/lexer"
	"github.com/leapstack-labs/bigsharp/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	s, err := lexer.Tokenize(src)
	require.NoError(t, err)
	return s.Tokens()
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "number literal",
			src:      "x = 1_000.50;",
			expected: "x = ParseBigFloat(\"1000.5\");\n",
		},
		{
			name:     "elif",
			src:      "if (a) {b;} elif (c) {d;}",
			expected: "if (a) {b;} else if (c) {d;}\n",
		},
		{
			name:     "native block",
			src:      `CSharp(Console.Beep(1, 2));`,
			expected: "Console.Beep(1, 2);\n",
		},
		{
			name:     "string kept",
			src:      `s = "a";`,
			expected: "s = \"a\";\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lex(t, tt.src)
			// Single-character names are Unknown until coalesced.
			for i := range toks {
				if toks[i].Kind == token.Unknown {
					toks[i].Kind = token.Identifier
				}
			}
			got, err := Render(toks)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRender_NativeKeepsUnknown(t *testing.T) {
	got, err := Render(lex(t, "CSharp(a @ b);"))
	require.NoError(t, err)
	assert.Equal(t, "a @ b;\n", got)
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		toks    []token.Token
		message string
	}{
		{
			name:    "unknown token",
			toks:    []token.Token{{Kind: token.Unknown, Text: "@", Pos: token.Position{Line: 1, Column: 3}}},
			message: `unrecognized input "@"`,
		},
		{
			name:    "unbalanced",
			toks:    []token.Token{{Kind: token.LBrace, Text: "{"}},
			message: `"{" is never closed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.toks)
			var renderErr *Error
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.message, renderErr.Message)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := &Error{Pos: token.Position{Line: 2, Column: 5}, Message: "boom"}
	assert.Equal(t, "render error at line 2, column 5: boom", err.Error())
	assert.Equal(t, "render error: boom", (&Error{Message: "boom"}).Error())
}

func TestStitch(t *testing.T) {
	assert.Equal(t, "h\nbody\nf\n", Stitch("h\n", "body\n", "f"))
	assert.Equal(t, "body\n", Stitch("", "body", ""))
}

func TestDefaults(t *testing.T) {
	assert.Contains(t, DefaultHeader(), "using System;")
	assert.Contains(t, DefaultHeader(), "using static BigFloat;")
	assert.NotEmpty(t, DefaultFooter())
}
