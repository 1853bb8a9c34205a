package profile

import (
	"slices"
	"testing"
)

func TestProfiler_StartDisabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    Profiler
	}{
		{"empty mode", Profiler{}},
		{"unknown mode", Profiler{Mode: "telepathy", Dir: t.TempDir()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := tt.p.Start()
			if _, ok := s.(ignore); !ok {
				t.Fatalf("Start() = %T, want no-op", s)
			}

			s.Stop()
		})
	}
}

func TestModes_Sorted(t *testing.T) {
	t.Parallel()

	m := Modes()
	if !slices.IsSorted(m) {
		t.Errorf("Modes() not sorted: %v", m)
	}

	if slices.Contains(m, "") {
		t.Errorf("Modes() contains the empty mode: %v", m)
	}
}
