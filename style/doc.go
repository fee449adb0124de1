// Package style implements the fixed-stride binary style codec and the
// ABI introspection constants.
//
// # Record layout
//
// One style record is Stride (28) float32 fields in this order:
//
//	 0 display          1=none, else flex
//	 1 position_type    1=absolute, else relative
//	 2 flex_direction   1=column, 2=row-reverse, 3=column-reverse, else row
//	 3 flex_wrap        1=wrap, 2=wrap-reverse, else nowrap
//	 4 justify_content  1=end, 2=center, 3=space-between, 4=space-around,
//	                    5=space-evenly, else start
//	 5 align_items      0=start, 1=end, 2=center, 3=baseline, else stretch
//	 6 align_self       1=start, 2=end, 3=center, 4=baseline, 5=stretch,
//	                    else auto
//	 7 flex_grow        raw factor
//	 8 flex_shrink      raw factor
//	 9 flex_basis       length; NaN = auto
//	10 width            length; NaN = unset
//	11 height           length; NaN = unset
//	12-15 min/max width/height   lengths; NaN = unconstrained
//	16-19 margin left/right/top/bottom
//	20-23 padding left/right/top/bottom
//	24 gap_row          cross-axis gap
//	25 gap_column       main-axis gap (row direction)
//	26 children_count   legacy bulk rebuild only
//	27 children_offset  legacy bulk rebuild only
//
// The fallback arms of the enum tables are part of the wire contract: an
// out-of-range code decodes to the documented default, never to an error.
// DecodeStrict exists for drift detection in tests.
//
// There is no percentage or auto-unit arithmetic in this schema; every
// numeric field is an absolute length.
package style
