package engine

import (
	stderrors "errors"
	"testing"

	"github.com/flexwire/layout-engine/errors"
)

func TestCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, StatusOK},
		{"invalid handle", errors.InvalidHandle(errors.PhaseBoundary, 0xdead), StatusInvalidHandle},
		{"misaligned", errors.Misaligned(errors.PhaseBoundary, "node buffer", 29, 28), StatusMisaligned},
		{"missing root", errors.MissingRoot(), StatusMissingRoot},
		{"nil pointer", errors.NilPointer(errors.PhaseBoundary, "ops", 12), StatusNilPointer},
		{"truncated", errors.Truncated("CreateLeaf", 2, 1), StatusTruncated},
		{"out of bounds", errors.OutOfBounds("UpdateStyle", "style", 90, 28, 100), StatusOutOfBounds},
		{"unknown node", errors.UnknownNode("UpdateStyle", 9), StatusUnknownNode},
		{"unknown opcode", errors.UnknownOpcode(99), StatusUnknownOpcode},
		{"cycle", errors.Cycle("SetChildren", 1, 0), StatusCycle},
		{"solver", errors.Solver(errors.PhaseCompute, stderrors.New("boom"), "compute"), StatusSolverFailure},
		{"plain error", stderrors.New("opaque"), StatusSolverFailure},
		{"wrapped", errors.Solver(errors.PhaseApply, errors.UnknownNode("SetChildren", 3), "apply"), StatusSolverFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("Code(%v) = %d (%s), want %d (%s)", tc.err, got, got, tc.want, tc.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusOK.String(); got != "ok" {
		t.Fatalf("StatusOK.String() = %q", got)
	}
	if got := StatusCycle.String(); got != "cycle" {
		t.Fatalf("StatusCycle.String() = %q", got)
	}
	if got := Status(-99).String(); got != "unknown" {
		t.Fatalf("Status(-99).String() = %q", got)
	}
	if got := CodeString(-3); got != "missing_root" {
		t.Fatalf("CodeString(-3) = %q", got)
	}
}
