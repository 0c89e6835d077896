// Package charclass compiles character class fragments into explicit
// membership sets over the 128-ordinal alphabet.
package charclass

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"rxprim/internal/prim"
)

// Predicate answers whether the character with ordinal c belongs to a class.
type Predicate func(c rune) bool

// Oracle turns a textual class fragment into a Predicate. The resolver never
// interprets escapes or negation itself; it only asks the oracle.
type Oracle interface {
	Compile(fragment string) (Predicate, error)
	// Quote escapes literal so that it compiles to a fragment matching
	// exactly that text.
	Quote(literal string) string
}

// Regexp2 is the default Oracle, backed by github.com/dlclark/regexp2.
type Regexp2 struct {
	Options regexp2.RegexOptions
}

// Compile accepts the .NET dialect plus \h, \H and POSIX bracket members.
// The predicate holds only when the fragment consumes the whole character,
// so zero-width fragments match nothing.
func (o Regexp2) Compile(fragment string) (Predicate, error) {
	src, err := rewriteDialect(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", prim.ErrInvalidClass, fragment, err)
	}
	re, err := regexp2.Compile(`\A(?:`+src+`)\z`, o.Options)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", prim.ErrInvalidClass, fragment, err)
	}
	return func(c rune) bool {
		ok, err := re.MatchString(string(c))
		return err == nil && ok
	}, nil
}

func (Regexp2) Quote(literal string) string { return regexp2.Escape(literal) }
