package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBoundary  Phase = "boundary"  // pointer/length validation at the call edge
	PhaseDecode    Phase = "decode"    // instruction and style record decoding
	PhaseApply     Phase = "apply"     // mutation of the registry and solver tree
	PhaseCompute   Phase = "compute"   // layout computation and results extraction
	PhaseLifecycle Phase = "lifecycle" // instance creation and destruction
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle Kind = "invalid_handle"
	KindNilPointer    Kind = "nil_pointer"
	KindMisaligned    Kind = "misaligned"
	KindTruncated     Kind = "truncated"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindUnknownNode   Kind = "unknown_node"
	KindUnknownOpcode Kind = "unknown_opcode"
	KindMissingRoot   Kind = "missing_root"
	KindCycle         Kind = "cycle"
	KindSolver        Kind = "solver"
	KindInvalidEnum   Kind = "invalid_enum"
	KindInvalidInput  Kind = "invalid_input"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string // opcode name when the error occurred inside an instruction
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the opcode name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidHandle creates an invalid instance handle error
func InvalidHandle(phase Phase, handle uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("instance handle %#x is not live", handle),
		Value:  handle,
	}
}

// NilPointer creates a null-pointer-with-nonzero-length error
func NilPointer(phase Phase, what string, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("%s pointer is null but length is %d", what, length),
		Value:  length,
	}
}

// Misaligned creates a buffer length misalignment error
func Misaligned(phase Phase, what string, length, stride int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMisaligned,
		Detail: fmt.Sprintf("%s length %d is not a multiple of stride %d", what, length, stride),
		Value:  length,
	}
}

// Truncated creates a truncated instruction error
func Truncated(op string, want, have int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Op:     op,
		Detail: fmt.Sprintf("instruction needs %d operand words, stream has %d", want, have),
	}
}

// OutOfBounds creates an out of bounds buffer access error
func OutOfBounds(op, buffer string, offset, count, length int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOutOfBounds,
		Op:     op,
		Detail: fmt.Sprintf("%s access [%d, %d) exceeds buffer length %d", buffer, offset, offset+count, length),
		Value:  offset,
	}
}

// UnknownNode creates an unresolvable node reference error
func UnknownNode(op string, external uint32) *Error {
	return &Error{
		Phase:  PhaseApply,
		Kind:   KindUnknownNode,
		Op:     op,
		Detail: fmt.Sprintf("external id %d is not registered", external),
		Value:  external,
	}
}

// UnknownOpcode creates an unknown opcode error
func UnknownOpcode(tag uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownOpcode,
		Detail: fmt.Sprintf("opcode tag %d is not part of the protocol", tag),
		Value:  tag,
	}
}

// MissingRoot creates a missing root error
func MissingRoot() *Error {
	return &Error{
		Phase:  PhaseCompute,
		Kind:   KindMissingRoot,
		Detail: "external id 0 does not resolve to a live node",
	}
}

// Cycle creates a cycle detection error
func Cycle(op string, external, child uint32) *Error {
	return &Error{
		Phase:  PhaseApply,
		Kind:   KindCycle,
		Op:     op,
		Detail: fmt.Sprintf("child %d is an ancestor of node %d", child, external),
		Value:  child,
	}
}

// Solver wraps a failure reported by the layout solver
func Solver(phase Phase, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSolver,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidEnum creates an invalid enum code error (strict decoding only)
func InvalidEnum(field string, code int32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEnum,
		Path:   []string{field},
		Detail: fmt.Sprintf("enum code %d out of range for %s", code, field),
		Value:  code,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}
