// Package flex is the layout solver behind the bridge: a retained tree of
// styled nodes with flexbox computation.
//
// The bridge consumes it through a narrow surface — NewLeaf, SetStyle,
// SetChildren, Remove, ComputeLayout, Layout — and treats everything else
// as internal. Dimensions are absolute lengths; NaN means unset and falls
// back to content-based sizing. Computed positions are relative to the
// parent's border box.
//
// Supported: row/column directions with reverses, wrapping, grow/shrink
// with min/max clamping, flex-basis, the six justify modes, align-items
// and align-self, per-axis gaps, margins, padding, display:none and
// absolute positioning. Not modeled: percentages, auto margins, baselines
// (aligned as start), and align-content (wrapped lines stack from the
// cross start).
package flex
