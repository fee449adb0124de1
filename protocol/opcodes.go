package protocol

// Opcode tags one instruction in the mutation stream. The numbering is
// wire contract; see style.ProtocolVersion.
type Opcode uint32

const (
	// OpCreateLeaf (external_id, style_offset) decodes a style record and
	// registers a new solver leaf under the external id.
	OpCreateLeaf Opcode = 1
	// OpUpdateStyle (external_id, style_offset) replaces the style of an
	// existing node.
	OpUpdateStyle Opcode = 2
	// OpSetChildren (external_id, children_offset, children_count) assigns
	// an ordered child list resolved from the children buffer.
	OpSetChildren Opcode = 3
	// OpRemoveNode (external_id) unregisters and deletes a node; a no-op
	// when the id is unknown.
	OpRemoveNode Opcode = 4
)

// operands returns the fixed operand word count of an opcode, or -1 for
// a tag outside the protocol.
func (op Opcode) operands() int {
	switch op {
	case OpCreateLeaf, OpUpdateStyle:
		return 2
	case OpSetChildren:
		return 3
	case OpRemoveNode:
		return 1
	}
	return -1
}

func (op Opcode) String() string {
	switch op {
	case OpCreateLeaf:
		return "CreateLeaf"
	case OpUpdateStyle:
		return "UpdateStyle"
	case OpSetChildren:
		return "SetChildren"
	case OpRemoveNode:
		return "RemoveNode"
	}
	return "unknown"
}
