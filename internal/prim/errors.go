package prim

import "errors"

var (
	// ErrUnsupportedConstruct is returned for input nodes outside the
	// recognised categories, including sequence containers of a subtype
	// other than plain, root, passive group or alternative branch.
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// ErrEmptyAlternative is returned when an alternation is requested over
	// zero parts. No primitive node expresses it.
	ErrEmptyAlternative = errors.New("can't have empty alternative")

	ErrInvalidQuantifier = errors.New("invalid quantifier")
	ErrInvalidClass      = errors.New("invalid character class")
	ErrDanglingBackref   = errors.New("backreference to unknown group")
)
