package lexer

import (
	"fmt"

	"github.com/leapstack-labs/bigsharp/pkg/token"
)

// LexError represents a lexical or structural error found while lexing.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString = "unterminated string literal"
	ErrUnterminatedChar   = "unterminated character literal"
	ErrInvalidNumber      = "invalid number literal %q: %v"
)
