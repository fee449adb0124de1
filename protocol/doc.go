// Package protocol defines the incremental mutation instruction set and
// its interpreter.
//
// # Instruction stream
//
// The stream is a flat sequence of 32-bit unsigned words. Each
// instruction is a tag followed by a fixed operand count:
//
//	1 CreateLeaf   external_id, style_offset
//	2 UpdateStyle  external_id, style_offset
//	3 SetChildren  external_id, children_offset, children_count
//	4 RemoveNode   external_id
//
// style_offset indexes float32 elements in the style buffer; one record
// is style.Stride elements. children_offset/count index uint32 external
// ids in the children buffer.
//
// # Failure semantics
//
// Instructions apply strictly left to right. The first failure (a
// truncated instruction, an unknown tag, an out-of-bounds offset, an
// unknown node reference, or a child assignment that would create a
// cycle) halts the run; everything already applied stays applied.
// Callers that need atomicity batch their streams so that any prefix is
// a consistent tree.
//
// SetChildren referencing an unknown child id fails the whole
// instruction. The legacy bulk-rebuild path predates that rule and keeps
// its original silent-drop behavior for compatibility.
package protocol
