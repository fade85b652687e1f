package portal

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{"2026-03-15T10:30:00Z", true, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15 10:30:00", true, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15", true, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15/03/2026", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tc := range tests {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
