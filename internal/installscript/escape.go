package installscript

import (
	"errors"
	"strings"
)

// ErrMalformedLiteral is returned by Unquote when the input is not a literal
// the escaper could have produced.
var ErrMalformedLiteral = errors.New("malformed string literal")

// Escaper converts arbitrary strings into string literals of one script
// dialect, and back.
type Escaper interface {
	// Escape returns s escaped for use between the dialect's literal quotes.
	Escape(s string) string
	// Quote returns s as a complete, quoted literal.
	Quote(s string) string
	// Unquote reverses Quote.
	Unquote(lit string) (string, error)
}

// EscaperFor returns the escaper for the given platform.
func EscaperFor(p Platform) (Escaper, error) {
	switch p {
	case Windows:
		return powershellEscaper{}, nil
	case Unix:
		return shellEscaper{}, nil
	default:
		return nil, ErrUnknownPlatform
	}
}

// shellEscaper produces POSIX double-quoted literals. Besides backslash and
// double quote it escapes $ and ` so a name can never start an expansion.
type shellEscaper struct{}

var shellReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

func (shellEscaper) Escape(s string) string {
	return shellReplacer.Replace(s)
}

func (e shellEscaper) Quote(s string) string {
	return `"` + e.Escape(s) + `"`
}

func (shellEscaper) Unquote(lit string) (string, error) {
	const minLen = 2
	if len(lit) < minLen || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", ErrMalformedLiteral
	}
	body := lit[1 : len(lit)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '"':
			return "", ErrMalformedLiteral
		case '\\':
			if i+1 >= len(body) {
				return "", ErrMalformedLiteral
			}
			next := body[i+1]
			switch next {
			case '\\', '"', '$', '`':
				b.WriteByte(next)
				i++
			default:
				// Inside double quotes a backslash before any other
				// character is kept literally.
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// powershellEscaper produces PowerShell single-quoted (verbatim) literals.
// PowerShell also treats the typographic quotes U+2018..U+201B as single
// quotes, so those are doubled too.
type powershellEscaper struct{}

func isPowerShellQuote(r rune) bool {
	switch r {
	case '\'', '‘', '’', '‚', '‛':
		return true
	}
	return false
}

func (powershellEscaper) Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isPowerShellQuote(r) {
			b.WriteRune(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (e powershellEscaper) Quote(s string) string {
	return "'" + e.Escape(s) + "'"
}

func (powershellEscaper) Unquote(lit string) (string, error) {
	const minLen = 2
	if len(lit) < minLen || lit[0] != '\'' || lit[len(lit)-1] != '\'' {
		return "", ErrMalformedLiteral
	}
	runes := []rune(lit[1 : len(lit)-1])

	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if isPowerShellQuote(r) {
			if i+1 >= len(runes) || !isPowerShellQuote(runes[i+1]) {
				return "", ErrMalformedLiteral
			}
			i++
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
