package sikuli

import (
	"fmt"
	"math"
	"strings"
)

// Descriptor is anything that can be located or acted on by the
// interpreter: a Pattern, a Region, or a decorator around one of them.
type Descriptor interface {
	// Validate reports malformed fields. It has no side effects.
	Validate() error
	// ScriptExpression renders the descriptor as interpreter script text.
	ScriptExpression() string
}

// DefaultSimilarity is the engine's default match threshold.
const DefaultSimilarity = 0.7

// Point is a 2D offset in screen pixels.
type Point struct {
	X, Y int
}

// Pattern describes an image to search for on screen.
type Pattern struct {
	Image      string  // path or URL of the image, resolved by the engine
	Similarity float64 // threshold in [0,1]
}

// NewPattern returns a Pattern with the default similarity.
func NewPattern(image string) Pattern {
	return Pattern{Image: image, Similarity: DefaultSimilarity}
}

// Similar returns a copy of p with the given threshold.
func (p Pattern) Similar(similarity float64) Pattern {
	p.Similarity = similarity
	return p
}

// Validate implements Descriptor.
func (p Pattern) Validate() error {
	if strings.TrimSpace(p.Image) == "" {
		return newValidationError("pattern", "image", "must not be empty")
	}
	if math.IsNaN(p.Similarity) || p.Similarity < 0 || p.Similarity > 1 {
		return newValidationError("pattern", "similarity", fmt.Sprintf("%v is outside [0,1]", p.Similarity))
	}
	return nil
}

// ScriptExpression implements Descriptor.
func (p Pattern) ScriptExpression() string {
	return fmt.Sprintf("Pattern(%s).similar(%s)", quote(p.Image), FormatFloat(p.Similarity))
}

// OffsetPattern decorates a descriptor with a click offset relative to the
// center of the match.
type OffsetPattern struct {
	Inner  Descriptor
	Offset Point
}

// WithOffset wraps d with an offset.
func WithOffset(d Descriptor, offset Point) OffsetPattern {
	return OffsetPattern{Inner: d, Offset: offset}
}

// Validate implements Descriptor.
func (o OffsetPattern) Validate() error {
	if o.Inner == nil {
		return newValidationError("pattern", "inner", "offset requires a pattern")
	}
	return o.Inner.Validate()
}

// ScriptExpression implements Descriptor.
func (o OffsetPattern) ScriptExpression() string {
	return fmt.Sprintf("%s.targetOffset(%d, %d)", o.Inner.ScriptExpression(), o.Offset.X, o.Offset.Y)
}

// RegionKind selects how a Region is rendered.
type RegionKind int

const (
	// RegionRect is an explicit rectangle.
	RegionRect RegionKind = iota
	// RegionScreen is a whole monitor.
	RegionScreen
	// RegionFocusedWindow is the window of the frontmost application.
	RegionFocusedWindow
)

// Region describes a rectangle of the screen.
type Region struct {
	Kind          RegionKind
	X, Y          int
	Width, Height int
	Screen        int // monitor index for RegionScreen
}

// NewRegion returns a rectangular region.
func NewRegion(x, y, w, h int) Region {
	return Region{Kind: RegionRect, X: x, Y: y, Width: w, Height: h}
}

// ScreenRegion returns the region covering monitor n.
func ScreenRegion(n int) Region {
	return Region{Kind: RegionScreen, Screen: n}
}

// FocusedWindow returns the region of the focused application window.
func FocusedWindow() Region {
	return Region{Kind: RegionFocusedWindow}
}

// Validate implements Descriptor.
func (r Region) Validate() error {
	switch r.Kind {
	case RegionRect:
		if r.Width <= 0 {
			return newValidationError("region", "width", fmt.Sprintf("%d must be positive", r.Width))
		}
		if r.Height <= 0 {
			return newValidationError("region", "height", fmt.Sprintf("%d must be positive", r.Height))
		}
	case RegionScreen:
		if r.Screen < 0 {
			return newValidationError("region", "screen", fmt.Sprintf("%d must not be negative", r.Screen))
		}
	case RegionFocusedWindow:
	default:
		return newValidationError("region", "kind", fmt.Sprintf("unknown kind %d", r.Kind))
	}
	return nil
}

// ScriptExpression implements Descriptor.
func (r Region) ScriptExpression() string {
	switch r.Kind {
	case RegionScreen:
		return fmt.Sprintf("Screen(%d)", r.Screen)
	case RegionFocusedWindow:
		return "App.focusedWindow()"
	default:
		return fmt.Sprintf("Region(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
	}
}
