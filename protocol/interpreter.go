package protocol

import (
	"github.com/flexwire/layout-engine/errors"
	"github.com/flexwire/layout-engine/flex"
	"github.com/flexwire/layout-engine/registry"
	"github.com/flexwire/layout-engine/style"
)

// Interpreter applies an ordered instruction stream against one solver
// tree and its registry.
//
// Processing is strictly sequential. The first malformed or unresolvable
// instruction halts the run with a typed error; instructions already
// applied stay applied. There is no rollback. Callers recover from a
// partial run by issuing compensating operations.
type Interpreter struct {
	Tree     *flex.Tree
	Registry *registry.Registry
}

// Run consumes the whole opcode stream. The style and children buffers
// are borrowed for the duration of the call; offsets inside instructions
// index into them and are bounds-checked per instruction.
func (in *Interpreter) Run(ops []uint32, styles []float32, children []uint32) error {
	i := 0
	for i < len(ops) {
		op := Opcode(ops[i])
		need := op.operands()
		if need < 0 {
			return errors.UnknownOpcode(ops[i])
		}
		if i+1+need > len(ops) {
			return errors.Truncated(op.String(), need, len(ops)-i-1)
		}
		args := ops[i+1 : i+1+need]

		var err error
		switch op {
		case OpCreateLeaf:
			err = in.createLeaf(args[0], args[1], styles)
		case OpUpdateStyle:
			err = in.updateStyle(args[0], args[1], styles)
		case OpSetChildren:
			err = in.setChildren(args[0], args[1], args[2], children)
		case OpRemoveNode:
			err = in.removeNode(args[0])
		}
		if err != nil {
			return err
		}
		i += 1 + need
	}
	return nil
}

func (in *Interpreter) createLeaf(external, styleOffset uint32, styles []float32) error {
	rec, err := styleRecord(OpCreateLeaf, styleOffset, styles)
	if err != nil {
		return err
	}
	handle := in.Tree.NewLeaf(style.Decode(rec))

	// Re-registering an external id orphans the previous solver node; the
	// protocol leaves reclamation to the caller (matching RemoveNode being
	// the only deletion primitive).
	in.Registry.Insert(external, handle)
	return nil
}

func (in *Interpreter) updateStyle(external, styleOffset uint32, styles []float32) error {
	handle, ok := in.Registry.Resolve(external)
	if !ok {
		return errors.UnknownNode(OpUpdateStyle.String(), external)
	}
	rec, err := styleRecord(OpUpdateStyle, styleOffset, styles)
	if err != nil {
		return err
	}
	if err := in.Tree.SetStyle(handle, style.Decode(rec)); err != nil {
		return errors.Solver(errors.PhaseApply, err, "set style")
	}
	return nil
}

// setChildren resolves every referenced external id before touching the
// tree: an unknown child fails the whole instruction rather than being
// silently dropped (the legacy bulk path keeps the older drop behavior).
func (in *Interpreter) setChildren(external, offset, count uint32, children []uint32) error {
	handle, ok := in.Registry.Resolve(external)
	if !ok {
		return errors.UnknownNode(OpSetChildren.String(), external)
	}
	end := int(offset) + int(count)
	if end > len(children) || end < int(offset) {
		return errors.OutOfBounds(OpSetChildren.String(), "children", int(offset), int(count), len(children))
	}

	ids := children[offset:end]
	handles := make([]flex.NodeID, len(ids))
	for i, childExt := range ids {
		ch, ok := in.Registry.Resolve(childExt)
		if !ok {
			return errors.UnknownNode(OpSetChildren.String(), childExt)
		}
		handles[i] = ch
	}

	if err := in.Tree.SetChildren(handle, handles); err != nil {
		if err == flex.ErrCycle {
			return errors.Cycle(OpSetChildren.String(), external, firstCycleChild(in, external, ids))
		}
		return errors.Solver(errors.PhaseApply, err, "set children")
	}
	return nil
}

func (in *Interpreter) removeNode(external uint32) error {
	handle, ok := in.Registry.Remove(external)
	if !ok {
		return nil
	}
	if err := in.Tree.Remove(handle); err != nil {
		return errors.Solver(errors.PhaseApply, err, "remove node")
	}
	return nil
}

func styleRecord(op Opcode, offset uint32, styles []float32) ([]float32, error) {
	end := int(offset) + style.Stride
	if end > len(styles) || end < int(offset) {
		return nil, errors.OutOfBounds(op.String(), "style", int(offset), style.Stride, len(styles))
	}
	return styles[offset:end], nil
}

// firstCycleChild re-runs the ancestor check to name the offending child
// in the error. Diagnostic only; the mutation was already rejected.
func firstCycleChild(in *Interpreter, external uint32, ids []uint32) uint32 {
	node, ok := in.Registry.Resolve(external)
	if !ok {
		return external
	}
	for _, childExt := range ids {
		ch, ok := in.Registry.Resolve(childExt)
		if !ok {
			continue
		}
		if ch == node || in.Tree.IsAncestor(ch, node) {
			return childExt
		}
	}
	return external
}
