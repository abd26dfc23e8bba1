// Package render prints a rewritten token stream as C# source and stitches
// it between a header and a footer.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/leapstack-labs/bigsharp/pkg/token"
)

var (
	//go:embed templates/header.cs
	defaultHeader string

	//go:embed templates/footer.cs
	defaultFooter string
)

// DefaultHeader returns the built-in program header.
func DefaultHeader() string { return defaultHeader }

// DefaultFooter returns the built-in program footer.
func DefaultFooter() string { return defaultFooter }

// Error reports a token the renderer cannot print.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("render error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return "render error: " + e.Message
}

// Common error messages
const (
	ErrUnknownToken = "unrecognized input %q"
)

// Printer accumulates emitted text.
type Printer struct {
	output *bytes.Buffer
}

func newPrinter() *Printer {
	return &Printer{output: &bytes.Buffer{}}
}

// String returns the printed text with a single trailing newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

// native prints the raw text between the parentheses of a CSharp(...)
// block starting at i and returns the index of its closing parenthesis.
func (p *Printer) native(toks []token.Token, i int) int {
	open := i + 1
	for open < len(toks) && toks[open].IsSpace() {
		open++
	}
	if open >= len(toks) || toks[open].Kind != token.LParen {
		p.write(toks[i].Text)
		return i
	}

	depth := 0
	for j := open; j < len(toks); j++ {
		switch k := toks[j].Kind; {
		case k.IsOpen():
			depth++
		case k.IsClose():
			depth--
			if depth == 0 {
				p.write(token.Join(toks[open+1 : j]))
				return j
			}
		}
	}
	return len(toks)
}

// Render prints toks as C#. Numbers go through ParseBigFloat, CSharp blocks
// are copied verbatim, and any surviving Unknown token is an error.
func Render(toks []token.Token) (string, error) {
	if bad, reason, ok := token.CheckBalance(toks); !ok {
		return "", &Error{Pos: bad.Pos, Message: reason}
	}

	p := newPrinter()
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.Kind {
		case token.Unknown:
			return "", &Error{Pos: t.Pos, Message: fmt.Sprintf(ErrUnknownToken, t.Text)}
		case token.Native:
			i = p.native(toks, i)
		default:
			p.write(t.Emit())
		}
	}
	return p.String(), nil
}

// Stitch joins header, body and footer with newlines. Empty parts are
// skipped.
func Stitch(header, body, footer string) string {
	var parts []string
	for _, part := range []string{header, body, footer} {
		if part = strings.Trim(part, "\n"); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n") + "\n"
}
