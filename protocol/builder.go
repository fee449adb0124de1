package protocol

import "github.com/flexwire/layout-engine/style"

// StreamBuilder assembles the three buffers a foreign caller would hand
// across the boundary: the opcode stream, the style records, and the
// child-id lists. Offsets are filled in as records are appended, the way
// a caller-side encoder configured from style.Describe() works.
//
// Used by tests and the demo; a real foreign caller writes the buffers
// itself.
type StreamBuilder struct {
	ops      []uint32
	styles   []float32
	children []uint32
}

func NewStreamBuilder() *StreamBuilder {
	return &StreamBuilder{}
}

// CreateLeaf appends a style record and the instruction referencing it.
// rec must hold style.Stride elements.
func (b *StreamBuilder) CreateLeaf(external uint32, rec []float32) *StreamBuilder {
	off := b.appendStyle(rec)
	b.ops = append(b.ops, uint32(OpCreateLeaf), external, off)
	return b
}

// UpdateStyle appends a style record and the instruction referencing it.
func (b *StreamBuilder) UpdateStyle(external uint32, rec []float32) *StreamBuilder {
	off := b.appendStyle(rec)
	b.ops = append(b.ops, uint32(OpUpdateStyle), external, off)
	return b
}

// SetChildren appends the child ids and the instruction referencing them.
func (b *StreamBuilder) SetChildren(external uint32, kids ...uint32) *StreamBuilder {
	off := uint32(len(b.children))
	b.children = append(b.children, kids...)
	b.ops = append(b.ops, uint32(OpSetChildren), external, off, uint32(len(kids)))
	return b
}

// RemoveNode appends a removal instruction.
func (b *StreamBuilder) RemoveNode(external uint32) *StreamBuilder {
	b.ops = append(b.ops, uint32(OpRemoveNode), external)
	return b
}

// RawOp appends arbitrary words, for exercising malformed streams.
func (b *StreamBuilder) RawOp(words ...uint32) *StreamBuilder {
	b.ops = append(b.ops, words...)
	return b
}

// Buffers returns the three assembled buffers.
func (b *StreamBuilder) Buffers() (ops []uint32, styles []float32, children []uint32) {
	return b.ops, b.styles, b.children
}

func (b *StreamBuilder) appendStyle(rec []float32) uint32 {
	off := uint32(len(b.styles))
	b.styles = append(b.styles, rec[:style.Stride]...)
	return off
}
