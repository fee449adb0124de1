package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "phase and kind",
			err:  New(PhaseCompute, KindMissingRoot).Build(),
			want: []string{"[compute]", "missing_root"},
		},
		{
			name: "opcode context",
			err:  UnknownNode("UpdateStyle", 7),
			want: []string{"[apply]", "unknown_node", "in UpdateStyle", "external id 7"},
		},
		{
			name: "bounds detail",
			err:  OutOfBounds("CreateLeaf", "style", 56, 28, 60),
			want: []string{"[decode]", "out_of_bounds", "style access [56, 84)", "length 60"},
		},
		{
			name: "cause chains",
			err:  Solver(PhaseCompute, stderrors.New("node slab exhausted"), "compute layout"),
			want: []string{"[compute]", "solver", "caused by: node slab exhausted"},
		},
		{
			name: "path",
			err:  InvalidEnum("flex_direction", 9),
			want: []string{"at flex_direction", "enum code 9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, frag := range tt.want {
				if !strings.Contains(msg, frag) {
					t.Errorf("message %q missing %q", msg, frag)
				}
			}
		})
	}
}

func TestIsMatchesPhaseAndKind(t *testing.T) {
	err := Truncated("SetChildren", 3, 1)

	if !stderrors.Is(err, &Error{Phase: PhaseDecode, Kind: KindTruncated}) {
		t.Error("expected match on same phase+kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseApply, Kind: KindTruncated}) {
		t.Error("unexpected match on different phase")
	}
	if stderrors.Is(err, &Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("unexpected match on different kind")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := New(PhaseApply, KindSolver).Cause(cause).Detail("set children").Build()

	if !stderrors.Is(err, cause) {
		t.Error("expected unwrap to reach the cause")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDecode, KindOutOfBounds).
		Op("UpdateStyle").
		Path("style_offset").
		Value(uint32(512)).
		Detail("offset %d past end", 512).
		Build()

	if err.Op != "UpdateStyle" {
		t.Errorf("Op = %q", err.Op)
	}
	if err.Value != uint32(512) {
		t.Errorf("Value = %v", err.Value)
	}
	if !strings.Contains(err.Error(), "offset 512 past end") {
		t.Errorf("detail not formatted: %s", err.Error())
	}
}
