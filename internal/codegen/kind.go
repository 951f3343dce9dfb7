package codegen

import "strings"

// Kind is the closed set of component types the generator understands.
// Anything outside the set is KindUnknown and renders nothing; the raw tag
// is preserved so callers can still see what was skipped.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeader
	KindHero
	KindText
	KindForm
)

// ParseKind maps a free-form component type tag to a Kind.
// Matching is case-insensitive.
func ParseKind(raw string) Kind {
	switch strings.ToLower(raw) {
	case "header":
		return KindHeader
	case "hero":
		return KindHero
	case "text":
		return KindText
	case "form":
		return KindForm
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindHero:
		return "hero"
	case KindText:
		return "text"
	case KindForm:
		return "form"
	default:
		return "unknown"
	}
}
