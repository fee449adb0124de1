package flex

import "math"

// Display controls whether a node participates in layout.
type Display uint8

const (
	DisplayFlex Display = iota
	DisplayNone
)

// Position selects in-flow or absolute placement.
type Position uint8

const (
	PositionRelative Position = iota
	PositionAbsolute
)

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Row Direction = iota
	Column
	RowReverse
	ColumnReverse
)

// Wrap controls whether children may break into multiple lines.
type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapLines
	WrapReverse
)

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align specifies cross-axis alignment for children of a container.
type Align uint8

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
	AlignBaseline
	AlignStretch
)

// AlignSelf overrides the container's AlignItems for a single node.
// AlignSelfAuto defers to the container.
type AlignSelf uint8

const (
	AlignSelfAuto AlignSelf = iota
	AlignSelfStart
	AlignSelfEnd
	AlignSelfCenter
	AlignSelfBaseline
	AlignSelfStretch
)

// Dimension is an absolute length in layout units. NaN means unset; the
// solver then falls back to content-based sizing (or no constraint, for
// min/max bounds).
type Dimension float32

// Auto returns the unset dimension.
func Auto() Dimension {
	return Dimension(math.NaN())
}

// Length returns a definite dimension.
func Length(v float32) Dimension {
	return Dimension(v)
}

// IsSet reports whether the dimension holds a definite length.
func (d Dimension) IsSet() bool {
	return !math.IsNaN(float64(d))
}

// Or returns the dimension's value, or fallback when unset.
func (d Dimension) Or(fallback float32) float32 {
	if d.IsSet() {
		return float32(d)
	}
	return fallback
}

// Edges holds per-side spacing (margin or padding).
type Edges struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
}

// Horizontal returns Left + Right.
func (e Edges) Horizontal() float32 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Edges) Vertical() float32 { return e.Top + e.Bottom }

// Size is a width/height pair. Either component may be infinite when used
// as available space.
type Size struct {
	Width  float32
	Height float32
}

// MaxContent returns unbounded available space, matching the solver's
// behavior when a root is sized purely from its own styles and content.
func MaxContent() Size {
	inf := float32(math.Inf(1))
	return Size{Width: inf, Height: inf}
}

// Style holds the layout properties for one node.
type Style struct {
	Display    Display
	Position   Position
	Direction  Direction
	Wrap       Wrap
	Justify    Justify
	AlignItems Align
	AlignSelf  AlignSelf

	Grow   float32
	Shrink float32
	Basis  Dimension

	Width     Dimension
	Height    Dimension
	MinWidth  Dimension
	MinHeight Dimension
	MaxWidth  Dimension
	MaxHeight Dimension

	Margin  Edges
	Padding Edges

	// GapRow separates flex lines, GapColumn separates items on a row's
	// main axis (CSS row-gap / column-gap).
	GapRow    float32
	GapColumn float32
}

// DefaultStyle returns a style with all dimensions unset.
func DefaultStyle() Style {
	return Style{
		Basis:     Auto(),
		Width:     Auto(),
		Height:    Auto(),
		MinWidth:  Auto(),
		MinHeight: Auto(),
		MaxWidth:  Auto(),
		MaxHeight: Auto(),
		Shrink:    1,
	}
}

// Layout holds the computed box for a node. X and Y are relative to the
// parent's border box.
type Layout struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// clampDim bounds v by the optional min/max dimensions. Unset bounds are
// skipped; min wins over max, like CSS.
func clampDim(v float32, min, max Dimension) float32 {
	if max.IsSet() && v > float32(max) {
		v = float32(max)
	}
	if min.IsSet() && v < float32(min) {
		v = float32(min)
	}
	return v
}
