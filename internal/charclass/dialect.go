package charclass

import (
	"fmt"
	"strings"

	"rxprim/internal/prim"
)

var posixClasses = map[string]func(c int) bool{
	"alpha":  func(c int) bool { return isUpper(c) || isLower(c) },
	"digit":  isDigit,
	"alnum":  func(c int) bool { return isUpper(c) || isLower(c) || isDigit(c) },
	"upper":  isUpper,
	"lower":  isLower,
	"space":  func(c int) bool { return c == ' ' || (c >= '\t' && c <= '\r') },
	"blank":  func(c int) bool { return c == ' ' || c == '\t' },
	"punct":  func(c int) bool { return isGraph(c) && !isUpper(c) && !isLower(c) && !isDigit(c) },
	"print":  func(c int) bool { return c >= ' ' && c < 0x7f },
	"graph":  isGraph,
	"cntrl":  func(c int) bool { return c < ' ' || c == 0x7f },
	"xdigit": isHex,
	"word":   func(c int) bool { return isUpper(c) || isLower(c) || isDigit(c) || c == '_' },
	"ascii":  func(c int) bool { return c < prim.Alphabet },
}

func isUpper(c int) bool { return c >= 'A' && c <= 'Z' }
func isLower(c int) bool { return c >= 'a' && c <= 'z' }
func isDigit(c int) bool { return c >= '0' && c <= '9' }
func isGraph(c int) bool { return c > ' ' && c < 0x7f }
func isHex(c int) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

// rewriteDialect lowers the class forms regexp2 does not know, \h, \H and
// POSIX bracket members such as [:alpha:] or [:^digit:], into explicit
// \xHH lists. Everything else is copied through untouched.
func rewriteDialect(fragment string) (string, error) {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		switch {
		case c == '\\' && i+1 < len(fragment):
			switch fragment[i+1] {
			case 'h', 'H':
				writeMembers(&b, isHex, fragment[i+1] == 'H', inClass)
			default:
				b.WriteString(fragment[i : i+2])
			}
			i++
		case c == '[' && inClass && strings.HasPrefix(fragment[i:], "[:"):
			end := strings.Index(fragment[i+2:], ":]")
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			name := fragment[i+2 : i+2+end]
			negated := strings.HasPrefix(name, "^")
			pred, ok := posixClasses[strings.TrimPrefix(name, "^")]
			if !ok {
				return "", fmt.Errorf("unknown POSIX class [:%s:]", name)
			}
			writeMembers(&b, pred, negated, true)
			i += 2 + end + 1
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			if i+1 < len(fragment) && fragment[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			// a ']' right after the opener is a member
			if i+1 < len(fragment) && fragment[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// writeMembers writes the ordinals selected by pred (or rejected by it when
// negated) as class members, bracketed unless already inside a class.
func writeMembers(b *strings.Builder, pred func(int) bool, negated, inClass bool) {
	if !inClass {
		b.WriteByte('[')
	}
	n := 0
	for c := 0; c < prim.Alphabet; c++ {
		if pred(c) != negated {
			fmt.Fprintf(b, `\x%02x`, c)
			n++
		}
	}
	if n == 0 {
		// \x80 lies outside the alphabet and keeps the class well formed.
		b.WriteString(`\x80`)
	}
	if !inClass {
		b.WriteByte(']')
	}
}
