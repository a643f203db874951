package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Phase: PhaseCall, Kind: KindEmptyCall},
			want: "[call] empty_call",
		},
		{
			name: "with detail",
			err:  EmptyCall(),
			want: "[call] empty_call: delegate holds no callable",
		},
		{
			name: "with type",
			err:  IllegalCopy("main.conn"),
			want: "[copy] illegal_copy: payload type main.conn - payload is move-only",
		},
		{
			name: "capacity",
			err:  Capacity("main.big", 64, 48),
			want: "[store] capacity: payload type main.big - payload is 64 bytes, storage holds 48",
		},
		{
			name: "with cause",
			err: &Error{
				Phase:  PhaseRegistry,
				Kind:   KindNotFound,
				Detail: "lookup failed",
				Cause:  fmt.Errorf("boom"),
			},
			want: "[registry] not_found: lookup failed (caused by: boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := Duplicate("handler")
	if !errors.Is(err, &Error{Phase: PhaseRegistry, Kind: KindDuplicate}) {
		t.Error("Is does not match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseRegistry, Kind: KindNotFound}) {
		t.Error("Is matches across kinds")
	}
	if errors.Is(err, errors.New("duplicate")) {
		t.Error("Is matches a foreign error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseStore, KindCapacity).Cause(cause).Build()
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain does not reach the cause")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseCopy, KindIllegalCopy).
		GoType("pkg.T").
		Detail("state %d", 5).
		Build()

	if err.Phase != PhaseCopy || err.Kind != KindIllegalCopy {
		t.Errorf("built %q/%q", err.Phase, err.Kind)
	}
	if err.GoType != "pkg.T" {
		t.Errorf("GoType = %q", err.GoType)
	}
	if err.Detail != "state 5" {
		t.Errorf("Detail = %q", err.Detail)
	}
}
