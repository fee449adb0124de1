package engine

import (
	stderrors "errors"

	"github.com/flexwire/layout-engine/errors"
)

// Status is the signed 32-bit result code returned across the boundary.
// Zero is success; failures are negative so a caller can branch on the
// sign before decoding the exact condition. The numbering is wire
// contract.
//
// Version 1 of the protocol only used codes 0 through -3; the incremental
// path added the rest.
type Status int32

const (
	StatusOK            Status = 0
	StatusInvalidHandle Status = -1
	StatusMisaligned    Status = -2
	StatusMissingRoot   Status = -3
	StatusNilPointer    Status = -4
	StatusTruncated     Status = -5
	StatusOutOfBounds   Status = -6
	StatusUnknownNode   Status = -7
	StatusUnknownOpcode Status = -8
	StatusCycle         Status = -9
	StatusSolverFailure Status = -10
)

var kindStatus = map[errors.Kind]Status{
	errors.KindInvalidHandle: StatusInvalidHandle,
	errors.KindMisaligned:    StatusMisaligned,
	errors.KindMissingRoot:   StatusMissingRoot,
	errors.KindNilPointer:    StatusNilPointer,
	errors.KindTruncated:     StatusTruncated,
	errors.KindOutOfBounds:   StatusOutOfBounds,
	errors.KindUnknownNode:   StatusUnknownNode,
	errors.KindUnknownOpcode: StatusUnknownOpcode,
	errors.KindCycle:         StatusCycle,
	errors.KindSolver:        StatusSolverFailure,
}

// Code maps an error to its wire status. nil maps to StatusOK; errors
// without a known kind report as solver failures rather than leaking a
// code the caller cannot decode.
func Code(err error) Status {
	if err == nil {
		return StatusOK
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		if s, ok := kindStatus[e.Kind]; ok {
			return s
		}
	}
	return StatusSolverFailure
}

var statusNames = map[Status]string{
	StatusOK:            "ok",
	StatusInvalidHandle: "invalid_handle",
	StatusMisaligned:    "misaligned",
	StatusMissingRoot:   "missing_root",
	StatusNilPointer:    "nil_pointer",
	StatusTruncated:     "truncated",
	StatusOutOfBounds:   "out_of_bounds",
	StatusUnknownNode:   "unknown_node",
	StatusUnknownOpcode: "unknown_opcode",
	StatusCycle:         "cycle",
	StatusSolverFailure: "solver_failure",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// CodeString names a raw wire code, for diagnostics on the foreign side
// of the boundary.
func CodeString(code int32) string {
	return Status(code).String()
}
