package debt

import (
	"errors"
	"testing"
)

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"milestone", PolicyMilestone, false},
		{"overlap", PolicyOverlap, false},
		{"", PolicyMilestone, false},
		{"  Overlap ", PolicyOverlap, false},
		{"watermark", "", true},
	}

	for _, tc := range cases {
		got, err := ParsePolicy(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownPolicy) {
				t.Fatalf("ParsePolicy(%q): expected ErrUnknownPolicy, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePolicy(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePolicy(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
