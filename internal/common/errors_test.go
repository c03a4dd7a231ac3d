package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_IsSentinel(t *testing.T) {
	err := fmt.Errorf("run: %w", NewAppError(KindNoTables, "nothing found", nil))

	if !errors.Is(err, ErrNoTables) {
		t.Fatalf("expected errors.Is to match ErrNoTables")
	}
	if errors.Is(err, ErrExtraction) {
		t.Fatalf("did not expect errors.Is to match ErrExtraction")
	}
}

func TestAppError_UnwrapCause(t *testing.T) {
	cause := errors.New("java exploded")
	err := ExtractionError(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if got := err.Error(); got != "EXTRACTION_FAILURE: extraction engine error: java exploded" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"invalid input", InvalidInputError("missing", nil), 3},
		{"malformed", MalformedArgumentErrorf("1,2,3,4", "bad area %q", "x"), 4},
		{"extraction", ExtractionError(errors.New("x")), 5},
		{"no tables", NewAppError(KindNoTables, "none", nil), 6},
		{"engine", NewAppError(KindEngineUnavailable, "no java", nil), 7},
		{"write", WriteError("/tmp/x.csv", errors.New("disk full")), 8},
		{"wrapped", fmt.Errorf("outer: %w", NewAppError(KindNoTables, "none", nil)), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMalformedArgumentErrorf_Hint(t *testing.T) {
	err := MalformedArgumentErrorf(`-a "110,28,555,820"`, "area must have 4 values, got %d", 3)
	if err.Hint != `example: -a "110,28,555,820"` {
		t.Fatalf("unexpected hint: %q", err.Hint)
	}
	if err.Kind != KindMalformedArgument {
		t.Fatalf("unexpected kind: %s", err.Kind)
	}
}
