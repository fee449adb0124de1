package flex

import "math"

// ComputeLayout computes geometry for the subtree rooted at root within
// the given available space. Positions are relative to the parent's
// border box; the root sits at (0, 0).
func (t *Tree) ComputeLayout(root NodeID, avail Size) error {
	n, ok := t.lookup(root)
	if !ok {
		return ErrInvalidNode
	}

	st := n.style
	w := t.resolveOuter(root, st.Width, st.MinWidth, st.MaxWidth, avail.Width, true)
	h := t.resolveOuter(root, st.Height, st.MinHeight, st.MaxHeight, avail.Height, false)
	n.layout = Layout{Width: w, Height: h}
	t.layoutChildren(root)
	return nil
}

// resolveOuter picks a node's border-box extent on one axis: explicit
// style if set, otherwise content size; unbounded available space never
// forces a size.
func (t *Tree) resolveOuter(id NodeID, dim, min, max Dimension, avail float32, horizontal bool) float32 {
	if dim.IsSet() {
		return clampDim(float32(dim), min, max)
	}
	iw, ih := t.intrinsic(id)
	v := iw
	if !horizontal {
		v = ih
	}
	if !math.IsInf(float64(avail), 1) && v > avail {
		v = avail
	}
	return clampDim(v, min, max)
}

// intrinsic returns the content-based border-box size of a node, the
// size it takes when nothing constrains it.
func (t *Tree) intrinsic(id NodeID) (w, h float32) {
	n, ok := t.lookup(id)
	if !ok {
		return 0, 0
	}
	st := n.style
	if st.Display == DisplayNone {
		return 0, 0
	}

	if st.Width.IsSet() && st.Height.IsSet() {
		return clampDim(float32(st.Width), st.MinWidth, st.MaxWidth),
			clampDim(float32(st.Height), st.MinHeight, st.MaxHeight)
	}

	isRow := st.Direction == Row || st.Direction == RowReverse
	mainGap := st.GapColumn
	if !isRow {
		mainGap = st.GapRow
	}

	var mainSum, crossMax float32
	count := 0
	for _, c := range n.children {
		cn, ok := t.lookup(c)
		if !ok || cn.style.Display == DisplayNone || cn.style.Position == PositionAbsolute {
			continue
		}
		main, cross := t.hypotheticalSize(c, isRow)
		outerMain := main + mainMargins(cn.style, isRow)
		outerCross := cross + crossMargins(cn.style, isRow)
		mainSum += outerMain
		if count > 0 {
			mainSum += mainGap
		}
		if outerCross > crossMax {
			crossMax = outerCross
		}
		count++
	}

	contentW := mainSum
	contentH := crossMax
	if !isRow {
		contentW, contentH = crossMax, mainSum
	}
	contentW += st.Padding.Horizontal()
	contentH += st.Padding.Vertical()

	w = contentW
	if st.Width.IsSet() {
		w = float32(st.Width)
	}
	h = contentH
	if st.Height.IsSet() {
		h = float32(st.Height)
	}
	return clampDim(w, st.MinWidth, st.MaxWidth), clampDim(h, st.MinHeight, st.MaxHeight)
}

// hypotheticalSize returns a child's clamped main and cross sizes before
// flexible length resolution. The main size comes from flex-basis, then
// the main-axis style, then content.
func (t *Tree) hypotheticalSize(id NodeID, isRow bool) (main, cross float32) {
	n, _ := t.lookup(id)
	st := n.style
	iw, ih := t.intrinsic(id)

	mainDim, crossDim := st.Width, st.Height
	minMain, maxMain := st.MinWidth, st.MaxWidth
	minCross, maxCross := st.MinHeight, st.MaxHeight
	im, ic := iw, ih
	if !isRow {
		mainDim, crossDim = st.Height, st.Width
		minMain, maxMain = st.MinHeight, st.MaxHeight
		minCross, maxCross = st.MinWidth, st.MaxWidth
		im, ic = ih, iw
	}

	basis := float32(st.Basis)
	if !st.Basis.IsSet() {
		basis = mainDim.Or(im)
	}
	main = clampDim(basis, minMain, maxMain)
	cross = clampDim(crossDim.Or(ic), minCross, maxCross)
	return main, cross
}

type flexItem struct {
	id        NodeID
	basis     float32 // flex base size
	main      float32 // resolved main size
	cross     float32 // hypothetical cross size
	minMain   Dimension
	maxMain   Dimension
	minCross  Dimension
	maxCross  Dimension
	grow      float32
	shrink    float32
	crossSet  bool
	align     Align
	margin    Edges
	frozen    bool
}

// layoutChildren runs the flex algorithm for one container whose own box
// is already resolved, then recurses into the children.
func (t *Tree) layoutChildren(id NodeID) {
	n, ok := t.lookup(id)
	if !ok || len(n.children) == 0 {
		return
	}
	st := n.style

	innerW := n.layout.Width - st.Padding.Horizontal()
	innerH := n.layout.Height - st.Padding.Vertical()
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	isRow := st.Direction == Row || st.Direction == RowReverse
	reversed := st.Direction == RowReverse || st.Direction == ColumnReverse

	mainAvail, crossAvail := innerW, innerH
	mainGap, crossGap := st.GapColumn, st.GapRow
	if !isRow {
		mainAvail, crossAvail = innerH, innerW
		mainGap, crossGap = st.GapRow, st.GapColumn
	}

	items := make([]*flexItem, 0, len(n.children))
	for _, c := range n.children {
		cn, ok := t.lookup(c)
		if !ok {
			continue
		}
		cs := cn.style
		if cs.Display == DisplayNone {
			t.zeroSubtree(c)
			continue
		}
		if cs.Position == PositionAbsolute {
			t.placeAbsolute(c, st)
			continue
		}

		main, cross := t.hypotheticalSize(c, isRow)
		it := &flexItem{
			id:       c,
			basis:    main,
			main:     main,
			cross:    cross,
			grow:     cs.Grow,
			shrink:   cs.Shrink,
			align:    resolveAlign(st.AlignItems, cs.AlignSelf),
			margin:   cs.Margin,
			minMain:  cs.MinWidth,
			maxMain:  cs.MaxWidth,
			minCross: cs.MinHeight,
			maxCross: cs.MaxHeight,
			crossSet: cs.Height.IsSet(),
		}
		if !isRow {
			it.minMain, it.maxMain = cs.MinHeight, cs.MaxHeight
			it.minCross, it.maxCross = cs.MinWidth, cs.MaxWidth
			it.crossSet = cs.Width.IsSet()
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return
	}

	lines := breakLines(items, mainAvail, mainGap, st.Wrap, isRow)

	// Cross extents per line. A single line fills the container's cross
	// axis, per CSS; wrapped lines size to content.
	lineCross := make([]float32, len(lines))
	for i, line := range lines {
		var max float32
		for _, it := range line {
			outer := it.cross + crossMargins2(it.margin, isRow)
			if outer > max {
				max = outer
			}
		}
		lineCross[i] = max
	}
	if len(lines) == 1 && !math.IsInf(float64(crossAvail), 1) && crossAvail > 0 {
		lineCross[0] = crossAvail
	}

	crossCursor := float32(0)
	lineOrder := make([]int, len(lines))
	for i := range lines {
		lineOrder[i] = i
	}
	if st.Wrap == WrapReverse {
		for i, j := 0, len(lineOrder)-1; i < j; i, j = i+1, j-1 {
			lineOrder[i], lineOrder[j] = lineOrder[j], lineOrder[i]
		}
	}

	for _, li := range lineOrder {
		line := lines[li]
		resolveFlexibleLengths(line, mainAvail, mainGap, isRow)

		placed := line
		justify := st.Justify
		if reversed {
			placed = make([]*flexItem, len(line))
			for i, it := range line {
				placed[len(line)-1-i] = it
			}
			justify = flipJustify(justify)
		}

		used := mainGap * float32(len(placed)-1)
		for _, it := range placed {
			used += it.main + mainMargins2(it.margin, isRow)
		}
		free := mainAvail - used
		if math.IsInf(float64(free), 1) {
			free = 0
		}
		lead, between := mainDistribution(justify, free, len(placed), mainGap)

		mainCursor := lead
		for _, it := range placed {
			cn, _ := t.lookup(it.id)

			crossSize := it.cross
			if it.align == AlignStretch && !it.crossSet {
				crossSize = clampDim(lineCross[li]-crossMargins2(it.margin, isRow), it.minCross, it.maxCross)
			}
			crossOffset := crossOffsetFor(it.align, lineCross[li], crossSize, it.margin, isRow)

			if isRow {
				cn.layout = Layout{
					X:      st.Padding.Left + mainCursor + it.margin.Left,
					Y:      st.Padding.Top + crossCursor + crossOffset,
					Width:  it.main,
					Height: crossSize,
				}
			} else {
				cn.layout = Layout{
					X:      st.Padding.Left + crossCursor + crossOffset,
					Y:      st.Padding.Top + mainCursor + it.margin.Top,
					Width:  crossSize,
					Height: it.main,
				}
			}

			mainCursor += it.main + mainMargins2(it.margin, isRow) + between
		}

		crossCursor += lineCross[li] + crossGap
	}

	for _, c := range n.children {
		if cn, ok := t.lookup(c); ok && cn.style.Display != DisplayNone {
			t.layoutChildren(c)
		}
	}
}

// placeAbsolute positions an absolutely positioned child at the parent's
// content-box origin. The binary style schema carries no inset fields, so
// absolute nodes only escape flow, they do not move.
func (t *Tree) placeAbsolute(id NodeID, parent Style) {
	n, _ := t.lookup(id)
	st := n.style
	w, h := t.intrinsic(id)
	n.layout = Layout{
		X:      parent.Padding.Left + st.Margin.Left,
		Y:      parent.Padding.Top + st.Margin.Top,
		Width:  w,
		Height: h,
	}
}

func (t *Tree) zeroSubtree(id NodeID) {
	n, ok := t.lookup(id)
	if !ok {
		return
	}
	n.layout = Layout{}
	for _, c := range n.children {
		t.zeroSubtree(c)
	}
}

// breakLines splits items into flex lines. Everything stays on one line
// unless wrapping is on and the main axis is bounded.
func breakLines(items []*flexItem, mainAvail, mainGap float32, wrap Wrap, isRow bool) [][]*flexItem {
	if wrap == NoWrap || math.IsInf(float64(mainAvail), 1) {
		return [][]*flexItem{items}
	}

	var lines [][]*flexItem
	var cur []*flexItem
	var used float32
	for _, it := range items {
		outer := it.main + mainMargins2(it.margin, isRow)
		need := outer
		if len(cur) > 0 {
			need += mainGap
		}
		if len(cur) > 0 && used+need > mainAvail+epsilon {
			lines = append(lines, cur)
			cur = []*flexItem{it}
			used = outer
			continue
		}
		cur = append(cur, it)
		used += need
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

const epsilon = 0.0001

// resolveFlexibleLengths grows or shrinks items on one line to fill the
// main axis, clamping against min/max and freezing violators each round
// (the standard flexbox freeze loop).
func resolveFlexibleLengths(items []*flexItem, mainAvail, mainGap float32, isRow bool) {
	if math.IsInf(float64(mainAvail), 1) {
		return
	}

	gaps := mainGap * float32(len(items)-1)
	for range items {
		used := gaps
		var totalGrow, totalScaledShrink float32
		for _, it := range items {
			used += it.main + mainMargins2(it.margin, isRow)
		}
		for _, it := range items {
			if it.frozen {
				continue
			}
			totalGrow += it.grow
			totalScaledShrink += it.shrink * it.basis
		}

		free := mainAvail - used
		var froze bool
		switch {
		case free > epsilon && totalGrow > 0:
			for _, it := range items {
				if it.frozen || it.grow == 0 {
					continue
				}
				target := it.main + free*it.grow/totalGrow
				clamped := clampDim(target, it.minMain, it.maxMain)
				if clamped != target {
					it.frozen = true
					froze = true
				}
				it.main = clamped
			}
		case free < -epsilon && totalScaledShrink > 0:
			for _, it := range items {
				if it.frozen || it.shrink == 0 {
					continue
				}
				target := it.main + free*(it.shrink*it.basis)/totalScaledShrink
				if target < 0 {
					target = 0
				}
				clamped := clampDim(target, it.minMain, it.maxMain)
				if clamped != target {
					it.frozen = true
					froze = true
				}
				it.main = clamped
			}
		default:
			return
		}
		if !froze {
			return
		}
	}
}

// mainDistribution returns the leading offset and inter-item spacing for
// a justify mode. Distribution modes fall back to start when the line
// overflows.
func mainDistribution(justify Justify, free float32, count int, gap float32) (lead, between float32) {
	between = gap
	switch justify {
	case JustifyEnd:
		lead = free
	case JustifyCenter:
		lead = free / 2
	case JustifySpaceBetween:
		if free > 0 && count > 1 {
			between += free / float32(count-1)
		}
	case JustifySpaceAround:
		if free > 0 {
			pad := free / float32(count)
			lead = pad / 2
			between += pad
		}
	case JustifySpaceEvenly:
		if free > 0 {
			pad := free / float32(count+1)
			lead = pad
			between += pad
		}
	}
	return lead, between
}

func flipJustify(j Justify) Justify {
	switch j {
	case JustifyStart:
		return JustifyEnd
	case JustifyEnd:
		return JustifyStart
	}
	return j
}

func resolveAlign(containerAlign Align, self AlignSelf) Align {
	switch self {
	case AlignSelfStart:
		return AlignStart
	case AlignSelfEnd:
		return AlignEnd
	case AlignSelfCenter:
		return AlignCenter
	case AlignSelfBaseline:
		return AlignBaseline
	case AlignSelfStretch:
		return AlignStretch
	}
	return containerAlign
}

// crossOffsetFor returns the item's offset from the line's cross start,
// including the leading cross margin. Baseline aligns as start; the
// schema has no text content to derive baselines from.
func crossOffsetFor(align Align, lineCross, crossSize float32, margin Edges, isRow bool) float32 {
	start, end := margin.Top, margin.Bottom
	if !isRow {
		start, end = margin.Left, margin.Right
	}
	switch align {
	case AlignEnd:
		return lineCross - crossSize - end
	case AlignCenter:
		return start + (lineCross-crossSize-start-end)/2
	}
	return start
}

func mainMargins(st Style, isRow bool) float32 {
	if isRow {
		return st.Margin.Horizontal()
	}
	return st.Margin.Vertical()
}

func crossMargins(st Style, isRow bool) float32 {
	if isRow {
		return st.Margin.Vertical()
	}
	return st.Margin.Horizontal()
}

func mainMargins2(m Edges, isRow bool) float32 {
	if isRow {
		return m.Horizontal()
	}
	return m.Vertical()
}

func crossMargins2(m Edges, isRow bool) float32 {
	if isRow {
		return m.Vertical()
	}
	return m.Horizontal()
}
