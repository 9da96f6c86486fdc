package schedule

import (
	"testing"
	"time"
)

func mustNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewNormalizer("America/Denver")
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}
	return n
}

func TestNormalizeDueTime(t *testing.T) {
	n := mustNormalizer(t)
	loc := n.Location()

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midnight becomes 6 PM same day",
			in:   time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			want: time.Date(2025, 3, 9, 18, 0, 0, 0, loc),
		},
		{
			name: "evening unchanged",
			in:   time.Date(2025, 3, 9, 23, 59, 0, 0, loc),
			want: time.Date(2025, 3, 9, 23, 59, 0, 0, loc),
		},
		{
			name: "seconds past midnight unchanged",
			in:   time.Date(2025, 3, 9, 0, 0, 30, 0, loc),
			want: time.Date(2025, 3, 9, 0, 0, 30, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.NormalizeDueTime(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("NormalizeDueTime(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToLocalNil(t *testing.T) {
	n := mustNormalizer(t)
	if got := n.ToLocal(nil); got != nil {
		t.Errorf("ToLocal(nil) = %v, want nil", got)
	}
}

func TestToLocalConvertsFromUTC(t *testing.T) {
	n := mustNormalizer(t)

	// Mountain Time is UTC-6 during daylight saving.
	summer := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	got := n.ToLocal(&summer)
	if got.Location() != n.Location() {
		t.Errorf("ToLocal location = %v, want %v", got.Location(), n.Location())
	}
	if got.Hour() != 0 || got.Day() != 10 {
		t.Errorf("ToLocal(%v) = %v, want midnight on March 10", summer, got)
	}

	// UTC-7 in winter; the civil date shifts back a day.
	winter := time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC)
	got = n.ToLocal(&winter)
	if got.Hour() != 23 || got.Day() != 14 {
		t.Errorf("ToLocal(%v) = %v, want 23:00 on January 14", winter, got)
	}
}

func TestNewNormalizerRejectsUnknownZone(t *testing.T) {
	if _, err := NewNormalizer("Not/AZone"); err == nil {
		t.Error("expected error for unknown timezone, got nil")
	}
}
