// Package lexer converts normalized BigSharp text into a token stream.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/bigsharp/pkg/decimal"
	"github.com/leapstack-labs/bigsharp/pkg/token"
)

// Lexer scans normalized source one token at a time.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	last        token.Kind // kind of the last token emitted
	significant token.Kind // kind of the last non-whitespace token emitted
}

// New creates a Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		last:        token.End,
		significant: token.End,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and validates bracket balance. The stream
// ends with an End token.
func Tokenize(input string) (*token.Stream, error) {
	l := New(input)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.End {
			break
		}
	}

	s := token.NewStream(toks)
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) advance(n int) {
	for range n {
		l.readChar()
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) prevChar() byte {
	if l.pos == 0 {
		return 0
	}
	return l.input[l.pos-1]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token, or an End token at end of input.
func (l *Lexer) NextToken() (token.Token, error) {
	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	l.last = tok.Kind
	if tok.Kind != token.Whitespace {
		l.significant = tok.Kind
	}
	return tok, nil
}

func (l *Lexer) scan() (token.Token, error) {
	pos := l.currentPos()

	switch {
	case l.atEnd():
		return token.Token{Kind: token.End, Pos: pos}, nil
	case isSpace(l.ch):
		return l.single(token.Whitespace, token.Default, pos), nil
	case l.ch == '\'':
		return l.readCharLiteral(pos)
	case l.ch == '"':
		return l.readString(pos)
	case isDigit(l.ch) && !l.inIdentifier():
		return l.readNumber(pos)
	case l.ch == '-' && isDigit(l.peekChar()) && l.unaryContext():
		return l.readNumber(pos)
	}

	if e, ok := token.Match(l.input[l.pos:], l.accept); ok {
		l.advance(len(e.Text))
		return token.Token{Kind: e.Kind, Text: e.Text, Own: e.Own, Pos: pos}, nil
	}

	if kind, ok := punctuation[l.ch]; ok {
		return l.single(kind, token.Default, pos), nil
	}

	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	text := l.input[l.pos : l.pos+size]
	l.advance(size)
	return token.Token{Kind: token.Unknown, Text: text, Pos: pos}, nil
}

var punctuation = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	',': token.Comma,
	';': token.Semicolon,
	'=': token.Assign,
	'<': token.LAngle,
	'>': token.RAngle,
	'.': token.Dot,
	':': token.Colon,
}

func (l *Lexer) single(kind token.Kind, own token.Ownership, pos token.Position) token.Token {
	tok := token.Token{Kind: kind, Text: string(l.ch), Own: own, Pos: pos}
	l.readChar()
	return tok
}

// accept rejects word-like spellings glued to identifier characters on
// either side, so "index" is not read as "in" followed by "dex".
func (l *Lexer) accept(e token.Entry) bool {
	if !e.Wordlike() {
		return true
	}
	if token.IsIdentByte(l.prevChar()) && l.pos > 0 {
		return false
	}
	end := l.pos + len(e.Text)
	return end >= len(l.input) || !token.IsIdentByte(l.input[end])
}

// inIdentifier reports whether the current character continues an
// identifier made of Unknown characters, as the 1 in x1.
func (l *Lexer) inIdentifier() bool {
	return l.last == token.Unknown && token.IsIdentByte(l.prevChar())
}

// unaryContext reports whether a minus here starts a negative literal
// rather than a subtraction.
func (l *Lexer) unaryContext() bool {
	switch l.significant {
	case token.End, token.Operator, token.Compare, token.Arrow, token.LParen,
		token.LBracket, token.LBrace, token.Comma, token.Assign, token.Semicolon,
		token.Colon, token.Question, token.Return, token.In, token.LAngle, token.RAngle:
		return true
	}
	return false
}

// readNumber reads digits with at most one '.', which must be followed by a
// digit. A minus is accepted only in front. Underscores are skipped.
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.pos
	var digits strings.Builder
	if l.ch == '-' {
		digits.WriteByte('-')
		l.readChar()
	}

	seenSep := false
loop:
	for {
		switch {
		case isDigit(l.ch):
			digits.WriteByte(l.ch)
		case l.ch == '_':
		case l.ch == '.' && !seenSep && isDigit(l.peekChar()):
			seenSep = true
			digits.WriteByte('.')
		default:
			break loop
		}
		l.readChar()
	}

	text := l.input[start:l.pos]
	d, err := decimal.Parse(digits.String())
	if err != nil {
		return token.Token{}, &LexError{Pos: pos, Message: fmt.Sprintf(ErrInvalidNumber, text, err)}
	}
	return token.NewNumber(text, token.NumberValue(d), pos), nil
}

// readCharLiteral reads 'x' or '\x'.
func (l *Lexer) readCharLiteral(pos token.Position) (token.Token, error) {
	start := l.pos
	l.readChar() // skip opening quote

	var r rune
	switch {
	case l.atEnd():
		return token.Token{}, &LexError{Pos: pos, Message: ErrUnterminatedChar}
	case l.ch == '\\':
		l.readChar()
		r = unescape(l.ch)
		l.readChar()
	default:
		var size int
		r, size = utf8.DecodeRuneInString(l.input[l.pos:])
		l.advance(size)
	}

	if l.ch != '\'' || l.atEnd() {
		return token.Token{}, &LexError{Pos: pos, Message: ErrUnterminatedChar}
	}
	l.readChar() // skip closing quote

	return token.Token{
		Kind:  token.Char,
		Text:  l.input[start:l.pos],
		Value: token.CharValue(r),
		Pos:   pos,
	}, nil
}

// readString reads up to the first quote not escaped by a backslash.
func (l *Lexer) readString(pos token.Position) (token.Token, error) {
	start := l.pos
	l.readChar() // skip opening quote

	escaped := false
	for {
		if l.atEnd() {
			return token.Token{}, &LexError{Pos: pos, Message: ErrUnterminatedString}
		}
		if l.ch == '"' && !escaped {
			break
		}
		escaped = l.ch == '\\' && !escaped
		l.readChar()
	}
	inner := l.input[start+1 : l.pos]
	l.readChar() // skip closing quote

	return token.Token{
		Kind:  token.String,
		Text:  l.input[start:l.pos],
		Value: token.StringValue(inner),
		Pos:   pos,
	}, nil
}

func unescape(c byte) rune {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	return rune(c)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
