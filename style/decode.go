package style

import (
	"math"

	"github.com/flexwire/layout-engine/errors"
	"github.com/flexwire/layout-engine/flex"
)

// Decode turns one fixed-stride record into a solver style. It is a pure
// total function: enum codes outside their table silently take the
// documented default, and NaN dimensions stay unset. rec must hold at
// least Stride elements; the interpreter bounds-checks before calling.
func Decode(rec []float32) flex.Style {
	_ = rec[Stride-1]

	s := flex.Style{
		Grow:   rec[PropFlexGrow],
		Shrink: rec[PropFlexShrink],

		Basis:     flex.Dimension(rec[PropFlexBasis]),
		Width:     flex.Dimension(rec[PropWidth]),
		Height:    flex.Dimension(rec[PropHeight]),
		MinWidth:  flex.Dimension(rec[PropMinWidth]),
		MinHeight: flex.Dimension(rec[PropMinHeight]),
		MaxWidth:  flex.Dimension(rec[PropMaxWidth]),
		MaxHeight: flex.Dimension(rec[PropMaxHeight]),

		Margin: flex.Edges{
			Left:   rec[PropMarginLeft],
			Right:  rec[PropMarginRight],
			Top:    rec[PropMarginTop],
			Bottom: rec[PropMarginBottom],
		},
		Padding: flex.Edges{
			Left:   rec[PropPaddingLeft],
			Right:  rec[PropPaddingRight],
			Top:    rec[PropPaddingTop],
			Bottom: rec[PropPaddingBottom],
		},
		GapRow:    rec[PropGapRow],
		GapColumn: rec[PropGapColumn],
	}

	s.Display = decodeDisplay(code(rec[PropDisplay]))
	s.Position = decodePosition(code(rec[PropPositionType]))
	s.Direction = decodeDirection(code(rec[PropFlexDirection]))
	s.Wrap = decodeWrap(code(rec[PropFlexWrap]))
	s.Justify = decodeJustify(code(rec[PropJustifyContent]))
	s.AlignItems = decodeAlignItems(code(rec[PropAlignItems]))
	s.AlignSelf = decodeAlignSelf(code(rec[PropAlignSelf]))
	return s
}

// DecodeStrict is Decode plus schema-drift detection: any enum code
// outside its table is an error instead of the default arm. Intended for
// tests and debugging tools, never for the hot path.
func DecodeStrict(rec []float32) (flex.Style, error) {
	limits := []struct {
		prop Prop
		max  int32
	}{
		{PropDisplay, 1},
		{PropPositionType, 1},
		{PropFlexDirection, 3},
		{PropFlexWrap, 2},
		{PropJustifyContent, 5},
		{PropAlignItems, 4},
		{PropAlignSelf, 5},
	}
	for _, l := range limits {
		c := code(rec[l.prop])
		if c < 0 || c > l.max {
			return flex.Style{}, errors.InvalidEnum(l.prop.String(), c)
		}
	}
	return Decode(rec), nil
}

// code truncates a float field to its integer enum code. NaN and values
// outside int32 map to -1, which no table matches, so they land on the
// default arm exactly like the original's saturating cast.
func code(f float32) int32 {
	f64 := float64(f)
	if math.IsNaN(f64) || f64 < math.MinInt32 || f64 > math.MaxInt32 {
		return -1
	}
	return int32(f64)
}

func decodeDisplay(c int32) flex.Display {
	if c == 1 {
		return flex.DisplayNone
	}
	return flex.DisplayFlex
}

func decodePosition(c int32) flex.Position {
	if c == 1 {
		return flex.PositionAbsolute
	}
	return flex.PositionRelative
}

func decodeDirection(c int32) flex.Direction {
	switch c {
	case 1:
		return flex.Column
	case 2:
		return flex.RowReverse
	case 3:
		return flex.ColumnReverse
	default:
		return flex.Row
	}
}

func decodeWrap(c int32) flex.Wrap {
	switch c {
	case 1:
		return flex.WrapLines
	case 2:
		return flex.WrapReverse
	default:
		return flex.NoWrap
	}
}

func decodeJustify(c int32) flex.Justify {
	switch c {
	case 1:
		return flex.JustifyEnd
	case 2:
		return flex.JustifyCenter
	case 3:
		return flex.JustifySpaceBetween
	case 4:
		return flex.JustifySpaceAround
	case 5:
		return flex.JustifySpaceEvenly
	default:
		return flex.JustifyStart
	}
}

func decodeAlignItems(c int32) flex.Align {
	switch c {
	case 0:
		return flex.AlignStart
	case 1:
		return flex.AlignEnd
	case 2:
		return flex.AlignCenter
	case 3:
		return flex.AlignBaseline
	default:
		return flex.AlignStretch
	}
}

func decodeAlignSelf(c int32) flex.AlignSelf {
	switch c {
	case 1:
		return flex.AlignSelfStart
	case 2:
		return flex.AlignSelfEnd
	case 3:
		return flex.AlignSelfCenter
	case 4:
		return flex.AlignSelfBaseline
	case 5:
		return flex.AlignSelfStretch
	default:
		return flex.AlignSelfAuto
	}
}

// NewRecord returns a zeroed record with the dimension fields set to the
// NaN "unset" sentinel, the state a well-behaved encoder starts from.
func NewRecord() []float32 {
	rec := make([]float32, Stride)
	nan := float32(math.NaN())
	for _, p := range []Prop{
		PropFlexBasis, PropWidth, PropHeight,
		PropMinWidth, PropMinHeight, PropMaxWidth, PropMaxHeight,
	} {
		rec[p] = nan
	}
	return rec
}
