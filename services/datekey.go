package services

import (
	"strconv"
	"strings"
	"time"
)

// InvalidDateKey is returned for timestamps that cannot be parsed. Aggregation
// skips it; it never matches a real period prefix.
const InvalidDateKey = "invalid-date"

// dhaka is the organization's fixed timezone. Every submission day boundary
// and every aggregation bucket is computed in Asia/Dhaka, never in the
// viewer's local zone, so an admin in Riyadh and one in Dhaka see the same
// totals.
var dhaka = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		// No tz database on the host. Dhaka has no DST, a fixed offset is exact.
		return time.FixedZone("BST", 6*60*60)
	}
	return loc
}()

// ToDateKey formats t as the Dhaka calendar day, YYYY-MM-DD.
func ToDateKey(t time.Time) string {
	return t.In(dhaka).Format("2006-01-02")
}

// TodayKey is the current Dhaka calendar day.
func TodayKey() string {
	return ToDateKey(time.Now())
}

// DateKeyFromString converts a raw timestamp string into a date key. Accepted
// inputs: RFC3339 (with or without fractional seconds), plain YYYY-MM-DD, and
// unix epoch milliseconds. Anything else yields InvalidDateKey rather than an
// error so one bad row cannot abort a whole aggregation.
func DateKeyFromString(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return InvalidDateKey
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ToDateKey(t)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return ToDateKey(t)
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		// Date-only strings are already a calendar day; passing through avoids
		// shifting them across midnight when interpreted as UTC.
		return t.Format("2006-01-02")
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
		return ToDateKey(time.UnixMilli(ms))
	}
	return InvalidDateKey
}

// ValidDateKey reports whether key is a usable YYYY-MM-DD date key.
func ValidDateKey(key string) bool {
	if key == InvalidDateKey {
		return false
	}
	_, err := time.Parse("2006-01-02", key)
	return err == nil
}

// MonthPrefix builds the YYYY-MM prefix used for month aggregation.
func MonthPrefix(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, dhaka).Format("2006-01")
}
