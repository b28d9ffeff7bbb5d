package services

import (
	"testing"
	"time"
)

func TestToDateKeySameDhakaDay(t *testing.T) {
	// 2025-01-15 18:00 UTC is 2025-01-16 00:00 in Dhaka (UTC+6); any UTC
	// instant on the same Dhaka day must key identically.
	morning := time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC)
	night := time.Date(2025, 1, 16, 17, 59, 59, 0, time.UTC)

	if got, want := ToDateKey(morning), "2025-01-16"; got != want {
		t.Fatalf("ToDateKey(morning) = %q, want %q", got, want)
	}
	if ToDateKey(morning) != ToDateKey(night) {
		t.Fatalf("same Dhaka day keyed differently: %q vs %q",
			ToDateKey(morning), ToDateKey(night))
	}

	nextDay := time.Date(2025, 1, 16, 18, 0, 0, 0, time.UTC)
	if ToDateKey(morning) == ToDateKey(nextDay) {
		t.Fatalf("different Dhaka days keyed identically: %q", ToDateKey(nextDay))
	}
}

func TestToDateKeyIgnoresViewerZone(t *testing.T) {
	instant := time.Date(2025, 6, 1, 20, 30, 0, 0, time.UTC)
	elsewhere := instant.In(time.FixedZone("PST", -8*3600))

	if ToDateKey(instant) != ToDateKey(elsewhere) {
		t.Fatalf("date key depends on input zone: %q vs %q",
			ToDateKey(instant), ToDateKey(elsewhere))
	}
}

func TestDateKeyFromString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2025-01-15T18:00:00Z", "2025-01-16"},
		{"2025-01-15T10:00:00.123Z", "2025-01-15"},
		{"2025-01-15", "2025-01-15"},
		{"", InvalidDateKey},
		{"not a date", InvalidDateKey},
		{"2025-13-45", InvalidDateKey},
	}
	for _, tt := range tests {
		if got := DateKeyFromString(tt.raw); got != tt.want {
			t.Errorf("DateKeyFromString(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDateKeyFromStringIdempotent(t *testing.T) {
	key := DateKeyFromString("2025-01-15T18:00:00Z")
	if again := DateKeyFromString(key); again != key {
		t.Fatalf("re-keying %q gave %q", key, again)
	}
}

func TestValidDateKey(t *testing.T) {
	if ValidDateKey(InvalidDateKey) {
		t.Fatal("sentinel reported valid")
	}
	if !ValidDateKey("2025-01-15") {
		t.Fatal("plain key reported invalid")
	}
	if ValidDateKey("2025-1-5") {
		t.Fatal("unpadded key reported valid")
	}
}

func TestMonthPrefix(t *testing.T) {
	if got := MonthPrefix(2025, 1); got != "2025-01" {
		t.Fatalf("MonthPrefix = %q, want 2025-01", got)
	}
}
