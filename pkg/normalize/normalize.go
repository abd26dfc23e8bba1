// Package normalize rewrites raw BigSharp source into the canonical text
// form the lexer expects.
//
// Comment-only and blank lines are dropped, the text is split into code and
// string segments, keyword spellings are canonicalized, statement
// terminators are inferred at line breaks, and interpolated strings are
// spliced into plain concatenations.
package normalize

import (
	"regexp"
	"strings"
)

// Options controls optional rewrites.
type Options struct {
	// Interpolation splices {expr} spans of $"..." strings into
	// concatenations. When false the $ prefix is left for the lexer.
	Interpolation bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Interpolation: true}
}

// Placeholders protect escapes while the text is split and rejoined.
const (
	quotePlaceholder      = "＂"
	openBracePlaceholder  = "｛"
	closeBracePlaceholder = "｝"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\r\f\v]+`)
	funcKeyword     = regexp.MustCompile(`\b(?:func|method)\b`)
	varKeyword      = regexp.MustCompile(`\bvar\b`)
	freezeKeyword   = regexp.MustCompile(`\bfreeze\b`)
	constBinding    = regexp.MustCompile(`^\s+[A-Za-z_]\w*\s*=\s*const\s*\(`)
	throwError      = regexp.MustCompile(`\bthrow\s+Error\b`)
	listLiteral     = regexp.MustCompile(`=\s?list\s?\{`)
	dictLiteral     = regexp.MustCompile(`=\s?dict\s?\{`)
	emptyBraces     = regexp.MustCompile(`\{\s*\}`)
	conditionHeader = regexp.MustCompile(`^(?:\}\s*)?(?:(?:if|elif)\s*\(.*\)|else)$`)
	enumKeyword     = regexp.MustCompile(`\benum\b`)
)

// Normalize returns the canonical form of src. The result always ends with
// a statement terminator.
func Normalize(src string, opts Options) string {
	text := strings.ReplaceAll(dropLines(src), `\"`, quotePlaceholder)
	segs := strings.Split(text, `"`)

	n := &normalizer{opts: opts}
	for i := range segs {
		if i%2 == 0 {
			segs[i] = n.code(segs[i], i+1 < len(segs))
			continue
		}
		segs[i] = n.str(segs[i], &segs[i-1])
	}

	out := strings.Join(segs, `"`)
	return strings.ReplaceAll(out, quotePlaceholder, `\"`) + ";"
}

// Expression normalizes a single-line expression: whitespace is collapsed
// and keywords are canonicalized, but no terminator is added.
func Expression(expr string) string {
	return canonicalize(horizontalSpace.ReplaceAllString(strings.TrimSpace(expr), " "))
}

func dropLines(src string) string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

type normalizer struct {
	opts Options

	line        string // text of the current output line so far
	pendingEnum bool   // saw enum, waiting for its body
	enumDepth   int    // brace depth inside an enum body
}

// code normalizes a code segment. beforeString reports whether a string
// segment follows it.
func (n *normalizer) code(seg string, beforeString bool) string {
	seg = canonicalize(horizontalSpace.ReplaceAllString(seg, " "))
	if beforeString && strings.HasSuffix(seg, "f") {
		if len(seg) == 1 || !isIdentByte(seg[len(seg)-2]) {
			seg = seg[:len(seg)-1] + "$"
		}
	}
	return n.terminate(seg)
}

// str normalizes a string segment. prev is the code segment before it,
// which loses its $ marker when the string is interpolated.
func (n *normalizer) str(seg string, prev *string) string {
	seg = strings.ReplaceAll(seg, "\n", `\n`)
	if n.opts.Interpolation && strings.HasSuffix(*prev, "$") {
		*prev = strings.TrimSuffix(*prev, "$")
		n.line = strings.TrimSuffix(n.line, "$")
		seg = interpolate(seg)
	}
	n.line += `"` + seg + `"`
	return seg
}

func canonicalize(s string) string {
	s = funcKeyword.ReplaceAllString(s, "dynamic")
	s = replaceVar(s)
	s = freezeKeyword.ReplaceAllString(s, "var")
	s = throwError.ReplaceAllString(s, "throw new Exception")
	s = listLiteral.ReplaceAllString(s, "= new List<dynamic> {")
	s = dictLiteral.ReplaceAllString(s, "= new Dictionary<dynamic, dynamic> {")
	return strings.ReplaceAll(s, "**", "^")
}

// replaceVar turns var into dynamic unless it introduces a constant binding.
func replaceVar(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range varKeyword.FindAllStringIndex(s, -1) {
		b.WriteString(s[last:m[0]])
		if constBinding.MatchString(s[m[1]:]) {
			b.WriteString("var")
		} else {
			b.WriteString("dynamic")
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func (n *normalizer) terminate(seg string) string {
	var b strings.Builder
	for i, part := range strings.Split(seg, "\n") {
		if i > 0 {
			if n.needsTerminator(part) {
				b.WriteByte(';')
			}
			b.WriteByte('\n')
			n.line = ""
		}
		n.trackEnum(part)
		b.WriteString(part)
		n.line += part
	}
	return b.String()
}

// needsTerminator decides whether the line break ending n.line, followed by
// a line starting with next, ends a statement.
func (n *normalizer) needsTerminator(next string) bool {
	prev := strings.TrimSpace(n.line)
	next = strings.TrimSpace(next)
	switch {
	case n.enumDepth > 0 || n.pendingEnum:
		return false
	case prev == "":
		return false
	case strings.ContainsAny(prev[len(prev)-1:], ";,{(["):
		return false
	case conditionHeader.MatchString(prev):
		return false
	case strings.HasPrefix(next, "{"):
		return false
	case strings.HasSuffix(prev, "}") && (startsWithWord(next, "else") || startsWithWord(next, "elif")):
		return false
	}
	return true
}

func (n *normalizer) trackEnum(s string) {
	starts := enumKeyword.FindAllStringIndex(s, -1)
	for i := 0; i < len(s); i++ {
		if len(starts) > 0 && starts[0][0] == i {
			if n.enumDepth == 0 {
				n.pendingEnum = true
			}
			i = starts[0][1] - 1
			starts = starts[1:]
			continue
		}
		switch s[i] {
		case '{':
			if n.enumDepth > 0 {
				n.enumDepth++
			} else if n.pendingEnum {
				n.pendingEnum = false
				n.enumDepth = 1
			}
		case '}':
			if n.enumDepth > 0 {
				n.enumDepth--
			}
		}
	}
}

// interpolate splices every balanced {expr} span of s into
// `" + (expr) + "`. Escaped braces survive as literal braces.
func interpolate(s string) string {
	s = strings.ReplaceAll(s, `\{`, openBracePlaceholder)
	s = strings.ReplaceAll(s, `\}`, closeBracePlaceholder)
	s = emptyBraces.ReplaceAllString(s, "")

	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			break
		}
		end := matchBrace(s, open)
		if end < 0 {
			break
		}
		b.WriteString(s[:open])
		b.WriteString(`" + (`)
		b.WriteString(Expression(s[open+1 : end]))
		b.WriteString(`) + "`)
		s = s[end+1:]
	}
	b.WriteString(s)

	out := strings.ReplaceAll(b.String(), openBracePlaceholder, "{")
	return strings.ReplaceAll(out, closeBracePlaceholder, "}")
}

func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func startsWithWord(s, word string) bool {
	return strings.HasPrefix(s, word) && (len(s) == len(word) || !isIdentByte(s[len(word)]))
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
