package glob

// Pattern is a glob pattern.
type Pattern struct {
	Segments []Segment
}

// Segment is one of Literal, Slash or Wild.
type Segment interface {
	isSegment()
}

// Slash represents a path separator. Consecutive separators in the source
// pattern collapse into one.
type Slash struct{}

// Literal is a fixed piece of a path element.
type Literal struct {
	Data string
}

// Wild is a wildcard within a path element: '?' matches exactly one
// codepoint, '*' matches any run of codepoints not containing a separator.
type Wild struct {
	Type WildType
	// MatchHidden allows the wildcard, when it is the first segment of a path
	// element, to match a leading dot.
	MatchHidden bool
}

// WildType is the type of a Wild.
type WildType int

// Values for WildType.
const (
	Question WildType = iota
	Star
)

func (Literal) isSegment() {}
func (Slash) isSegment()   {}
func (Wild) isSegment()    {}

// IsSlash returns whether seg is a Slash.
func IsSlash(seg Segment) bool {
	_, ok := seg.(Slash)
	return ok
}

// IsLiteral returns whether seg is a Literal.
func IsLiteral(seg Segment) bool {
	_, ok := seg.(Literal)
	return ok
}

// IsWild returns whether seg is a Wild.
func IsWild(seg Segment) bool {
	_, ok := seg.(Wild)
	return ok
}

// IsWild1 returns whether seg is a Wild of the given type.
func IsWild1(seg Segment, t WildType) bool {
	return IsWild(seg) && seg.(Wild).Type == t
}
