// Package token defines the tokens produced by the lexer and rewritten by
// the rewrite passes, and the Stream buffer the passes operate on.
package token

import "fmt"

// Kind is the category of a token.
type Kind int32

const (
	// Special tokens
	End Kind = iota
	Unknown
	Whitespace

	// Literals
	Number // 12, 3.5, -1_000
	Char   // 'a'
	String // "text"
	Int    // raw integer emitted by a rewrite pass

	// Names
	Identifier
	Variable // declared with dynamic or var
	Method   // declared with dynamic or void and a parameter list

	// Punctuation
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	LAngle    // <
	RAngle    // >
	Comma     // ,
	Semicolon // ;
	Assign    // =
	Dot       // .
	Colon     // :

	// Operators
	Operator // + - * / \ % ! ^ ** && ||
	Compare  // == != <= >=
	Arrow    // =>
	In       // in
	Is       // is
	Question // ?

	// Words
	Goto
	Break
	Continue
	New
	Const
	If
	Elif
	Else
	Return
	Enum
	Foreach

	// Commands
	WriteLine
	Write
	Native // CSharp(...) passthrough
	Contains

	// Data types
	Void
	Dynamic
	Var
	Dictionary

	// Attributes
	Optimized // [Optimized]

	// Classes
	Console

	// Prefixes
	Interpolation // $

	// Raw is verbatim target text synthesized by a rewrite pass.
	Raw
)

var kindNames = map[Kind]string{
	End:           "End",
	Unknown:       "Unknown",
	Whitespace:    "Whitespace",
	Number:        "Number",
	Char:          "Char",
	String:        "String",
	Int:           "Int",
	Identifier:    "Identifier",
	Variable:      "Variable",
	Method:        "Method",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	LAngle:        "LAngle",
	RAngle:        "RAngle",
	Comma:         "Comma",
	Semicolon:     "Semicolon",
	Assign:        "Assign",
	Dot:           "Dot",
	Colon:         "Colon",
	Operator:      "Operator",
	Compare:       "Compare",
	Arrow:         "Arrow",
	In:            "In",
	Is:            "Is",
	Question:      "Question",
	Goto:          "Goto",
	Break:         "Break",
	Continue:      "Continue",
	New:           "New",
	Const:         "Const",
	If:            "If",
	Elif:          "Elif",
	Else:          "Else",
	Return:        "Return",
	Enum:          "Enum",
	Foreach:       "Foreach",
	WriteLine:     "WriteLine",
	Write:         "Write",
	Native:        "Native",
	Contains:      "Contains",
	Void:          "Void",
	Dynamic:       "Dynamic",
	Var:           "Var",
	Dictionary:    "Dictionary",
	Optimized:     "Optimized",
	Console:       "Console",
	Interpolation: "Interpolation",
	Raw:           "Raw",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// IsOpen reports whether k opens a nesting level.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a nesting level.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing kind for an opening kind, or End.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	}
	return End
}

// IsDataType reports whether k declares a variable or function.
func (k Kind) IsDataType() bool {
	return k == Void || k == Dynamic || k == Var || k == Dictionary
}

// IsName reports whether k is an identifier-like name.
func (k Kind) IsName() bool {
	return k == Identifier || k == Variable || k == Method
}

// Ownership marks the syntactic role of a token.
type Ownership uint8

const (
	Default Ownership = iota
	Command
	Word
	Expression
)

func (o Ownership) String() string {
	switch o {
	case Command:
		return "Command"
	case Word:
		return "Word"
	case Expression:
		return "Expression"
	}
	return "Default"
}

// Token is a lexical token. Tokens are values; passes copy and replace them.
type Token struct {
	Kind  Kind
	Text  string
	Value Value
	Own   Ownership
	Pos   Position

	// Synthetic marks tokens created by a rewrite pass rather than the lexer.
	Synthetic bool
}

// Make returns a synthesized token with the ownership of its kind.
func Make(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text, Own: ownershipOf(kind), Synthetic: true}
}

// NewNumber returns a Number token carrying v.
func NewNumber(text string, v Value, pos Position) Token {
	return Token{Kind: Number, Text: text, Value: v, Own: Expression, Pos: pos}
}

func (t Token) String() string {
	if t.Kind == End {
		return "End"
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// IsSpace reports whether t is a whitespace token.
func (t Token) IsSpace() bool { return t.Kind == Whitespace }

// Emit returns the target-language text of t. Number literals are emitted
// through the runtime parser so they keep full precision; elif becomes
// else if.
func (t Token) Emit() string {
	switch t.Kind {
	case Number:
		if d, ok := t.Value.AsNumber(); ok {
			return fmt.Sprintf("ParseBigFloat(%q)", d.String())
		}
	case Elif:
		return "else if"
	case End:
		return ""
	}
	return t.Text
}

func ownershipOf(k Kind) Ownership {
	if e, ok := byKind[k]; ok {
		return e.Own
	}
	switch k {
	case Number, Int:
		return Expression
	}
	return Default
}
