package style

// Prop indexes one field inside a style record. The order is the wire
// contract: changing it requires bumping ProtocolVersion.
type Prop uint32

const (
	PropDisplay Prop = iota
	PropPositionType
	PropFlexDirection
	PropFlexWrap
	PropJustifyContent
	PropAlignItems
	PropAlignSelf
	PropFlexGrow
	PropFlexShrink
	PropFlexBasis
	PropWidth
	PropHeight
	PropMinWidth
	PropMinHeight
	PropMaxWidth
	PropMaxHeight
	PropMarginLeft
	PropMarginRight
	PropMarginTop
	PropMarginBottom
	PropPaddingLeft
	PropPaddingRight
	PropPaddingTop
	PropPaddingBottom
	PropGapRow
	PropGapColumn
	PropChildrenCount
	PropChildrenOffset

	PropCount
)

// Stride is the number of float32 fields in one style record.
const Stride = int(PropCount)

// Results records are (external_id, x, y, width, height) tuples; the id
// is float-encoded like everything else in the buffer.
const (
	ResultID = iota
	ResultX
	ResultY
	ResultWidth
	ResultHeight

	ResultStride
)

// ElemSize is the byte width of one buffer element on the wire.
const ElemSize = 4

// ProtocolVersion is bumped whenever record layout, opcode numbering or
// the status-code mapping changes. Version 1 was the bulk-rebuild-only
// protocol; version 2 added the incremental opcode stream.
const ProtocolVersion = 2

var propNames = [...]string{
	"display", "position_type", "flex_direction", "flex_wrap",
	"justify_content", "align_items", "align_self", "flex_grow",
	"flex_shrink", "flex_basis", "width", "height", "min_width",
	"min_height", "max_width", "max_height", "margin_left", "margin_right",
	"margin_top", "margin_bottom", "padding_left", "padding_right",
	"padding_top", "padding_bottom", "gap_row", "gap_column",
	"children_count", "children_offset",
}

func (p Prop) String() string {
	if int(p) < len(propNames) {
		return propNames[p]
	}
	return "unknown"
}

// Schema describes the binary layout so a caller-side encoder can
// self-configure instead of hardcoding offsets.
type Schema struct {
	StyleStride  int
	ResultStride int
	ElemSize     int
	Version      int
}

// Describe returns the compile-time layout constants.
func Describe() Schema {
	return Schema{
		StyleStride:  Stride,
		ResultStride: ResultStride,
		ElemSize:     ElemSize,
		Version:      ProtocolVersion,
	}
}

// FieldOffset returns the element offset of a property inside a record,
// or -1 when the property is out of range.
func FieldOffset(p Prop) int {
	if p >= PropCount {
		return -1
	}
	return int(p)
}
