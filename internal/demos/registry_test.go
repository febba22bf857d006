package demos

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/abrunet/asynclab/internal/errors"
)

func testParams() Params {
	return Params{BaseDelay: time.Millisecond}
}

func TestRegistryOrderAndNames(t *testing.T) {
	t.Parallel()

	units := Registry(testParams())
	if len(units) != 9 {
		t.Fatalf("Registry() returned %d units, want 9", len(units))
	}

	seen := make(map[string]bool)
	for i, u := range units {
		if u.Ordinal != i+1 {
			t.Errorf("unit %q has ordinal %d, want %d", u.Name, u.Ordinal, i+1)
		}
		if u.Name == "" || u.Title == "" || u.Explanation == "" {
			t.Errorf("unit %d is missing a name, title or explanation", i+1)
		}
		if u.Action == nil {
			t.Errorf("unit %q has no action", u.Name)
		}
		if seen[u.Name] {
			t.Errorf("duplicate unit name %q", u.Name)
		}
		seen[u.Name] = true
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	units := Registry(testParams())

	tests := []struct {
		name      string
		only      string
		wantNames []string
		wantErr   bool
	}{
		{
			name:      "empty selection keeps everything",
			only:      "",
			wantNames: nil, // checked by length below
		},
		{
			name:      "single unit",
			only:      "concurrent-hello",
			wantNames: []string{"concurrent-hello"},
		},
		{
			name:      "subset preserves catalog order",
			only:      "fetch-concurrent,sequential-hello",
			wantNames: []string{"sequential-hello", "fetch-concurrent"},
		},
		{
			name:      "whitespace around names is ignored",
			only:      " goroutine-hello , hybrid-offload ",
			wantNames: []string{"goroutine-hello", "hybrid-offload"},
		},
		{
			name:    "unknown name is rejected",
			only:    "no-such-unit",
			wantErr: true,
		},
		{
			name:    "one unknown among known names is rejected",
			only:    "sequential-hello,no-such-unit",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Filter(units, tt.only)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Filter() returned nil error, want configuration error")
				}
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("Filter() error = %v, want ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Filter() unexpected error: %v", err)
			}

			if tt.only == "" {
				if len(got) != len(units) {
					t.Fatalf("Filter(\"\") returned %d units, want %d", len(got), len(units))
				}
				return
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("Filter() returned %d units, want %d", len(got), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if got[i].Name != name {
					t.Errorf("Filter()[%d].Name = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}
