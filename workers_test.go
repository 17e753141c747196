package elem2keitaro

import (
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	auto := min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit one for sequential", 1, 1},
		{"explicit can exceed max", MaxWorkers + 10, MaxWorkers + 10},
		{"zero uses GOMAXPROCS", 0, auto},
		{"negative uses GOMAXPROCS", -3, auto},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveWorkers(tt.workers); got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}
