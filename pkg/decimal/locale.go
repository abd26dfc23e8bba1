package decimal

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Separators holds the decimal and digit-grouping separators of a locale.
// Group is zero when the locale does not group digits.
type Separators struct {
	Decimal rune
	Group   rune
}

// SeparatorsFor derives the separators used by tag from its CLDR number
// formatting.
func SeparatorsFor(tag language.Tag) Separators {
	p := message.NewPrinter(tag)
	sample := p.Sprint(number.Decimal(1234.5, number.MinFractionDigits(1)))

	var marks []rune
	for _, r := range sample {
		if !unicode.IsDigit(r) {
			marks = append(marks, r)
		}
	}
	switch len(marks) {
	case 0:
		return Separators{Decimal: '.'}
	case 1:
		return Separators{Decimal: marks[0]}
	default:
		return Separators{Decimal: marks[len(marks)-1], Group: marks[0]}
	}
}

// Normalize rewrites s from the locale's notation into the canonical one:
// group separators are removed and the decimal separator becomes '.'.
func (s Separators) Normalize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case s.Group != 0 && (r == s.Group || unicode.IsSpace(s.Group) && unicode.IsSpace(r)):
			continue
		case r == s.Decimal:
			b.WriteByte('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseLocale parses text written with the separators of tag.
func ParseLocale(text string, tag language.Tag) (Decimal, error) {
	return Parse(SeparatorsFor(tag).Normalize(strings.TrimSpace(text)))
}
