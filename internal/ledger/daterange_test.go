package ledger

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantStart time.Time
		wantEnd   time.Time
		wantNil   bool
		wantErr   bool
	}{
		{
			name:      "single day",
			startDate: "2025-03-10",
			endDate:   "2025-03-10",
			wantStart: time.Date(2025, 3, 10, 0, 0, 0, 0, Zone),
			wantEnd:   time.Date(2025, 3, 10, 23, 59, 59, 999_000_000, Zone),
		},
		{
			name:      "multi day",
			startDate: "2025-03-01",
			endDate:   "2025-03-31",
			wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, Zone),
			wantEnd:   time.Date(2025, 3, 31, 23, 59, 59, 999_000_000, Zone),
		},
		{
			name:      "missing start falls back to end",
			startDate: "",
			endDate:   "2025-03-10",
			wantStart: time.Date(2025, 3, 10, 0, 0, 0, 0, Zone),
			wantEnd:   time.Date(2025, 3, 10, 23, 59, 59, 999_000_000, Zone),
		},
		{
			name:      "missing end falls back to start",
			startDate: "2025-03-10",
			endDate:   "",
			wantStart: time.Date(2025, 3, 10, 0, 0, 0, 0, Zone),
			wantEnd:   time.Date(2025, 3, 10, 23, 59, 59, 999_000_000, Zone),
		},
		{
			name:    "both empty yields nil range",
			wantNil: true,
		},
		{
			name:      "invalid date",
			startDate: "10-03-2025",
			endDate:   "2025-03-10",
			wantErr:   true,
		},
		{
			name:      "finish before start",
			startDate: "2025-03-10",
			endDate:   "2025-03-09",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DayBounds(tt.startDate, tt.endDate)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if r != nil {
					t.Fatalf("expected nil range, got %+v", r)
				}
				return
			}
			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", r.Start, tt.wantStart)
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", r.End, tt.wantEnd)
			}
		})
	}
}

func TestDayBounds_MillisecondBoundaries(t *testing.T) {
	r, err := DayBounds("2025-03-10", "2025-03-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly on the bounds: included.
	if !r.Contains(time.Date(2025, 3, 10, 0, 0, 0, 0, Zone)) {
		t.Error("start instant should be included")
	}
	if !r.Contains(time.Date(2025, 3, 11, 23, 59, 59, 999_000_000, Zone)) {
		t.Error("end instant should be included")
	}

	// One millisecond outside either bound: excluded.
	if r.Contains(time.Date(2025, 3, 10, 0, 0, 0, 0, Zone).Add(-time.Millisecond)) {
		t.Error("instant before start should be excluded")
	}
	if r.Contains(time.Date(2025, 3, 11, 23, 59, 59, 999_000_000, Zone).Add(time.Millisecond)) {
		t.Error("instant after end should be excluded")
	}
}

func TestDayBounds_ZoneIsUTCPlus7(t *testing.T) {
	r, err := DayBounds("2025-03-10", "2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 00:00:00+07:00 is 17:00 the previous day in UTC.
	wantStart := time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC)
	if !r.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", r.Start.UTC(), wantStart)
	}
}
