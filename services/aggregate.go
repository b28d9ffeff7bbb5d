package services

import (
	"fmt"
	"strings"
)

// ComparisonKind selects how the from/to tokens are matched against date
// keys: a single day, a YYYY-MM month, a YYYY year, or one month with no
// comparison side at all.
type ComparisonKind string

const (
	CompareDay         ComparisonKind = "day"
	CompareMonth       ComparisonKind = "month"
	CompareYear        ComparisonKind = "year"
	CompareSingleMonth ComparisonKind = "singleMonth"
)

// IsValidComparisonKind reports whether k is a supported comparison type.
func IsValidComparisonKind(k ComparisonKind) bool {
	switch k {
	case CompareDay, CompareMonth, CompareYear, CompareSingleMonth:
		return true
	}
	return false
}

// AggregationResult is one row of a comparison table: the metric label, the
// totals for both periods and the formatted change between them.
type AggregationResult struct {
	Label      string  `json:"label"`
	Metric     string  `json:"metric"`
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Change     string  `json:"change"`
	IsIncrease bool    `json:"isIncrease"`
}

// Compare totals every metric of data over two periods for the visible users
// and computes the percentage change. For CompareSingleMonth only the From
// side is populated and Change is left empty.
//
// Emails in visible with no records contribute zero; the engine never fails
// on missing data.
func Compare(data *CategoryData, visible map[string]struct{}, kind ComparisonKind, from, to string, profile ScoringProfile) []AggregationResult {
	if data == nil {
		return nil
	}

	metrics := data.Order
	if len(metrics) == 0 {
		for metric := range data.Labels {
			metrics = append(metrics, metric)
		}
	}

	results := make([]AggregationResult, 0, len(metrics))
	for _, metric := range metrics {
		fromTotal := sumPeriod(data, visible, kind, from, metric, profile)

		if kind == CompareSingleMonth {
			results = append(results, AggregationResult{
				Label:  data.Labels[metric],
				Metric: metric,
				From:   fromTotal,
			})
			continue
		}

		toTotal := sumPeriod(data, visible, kind, to, metric, profile)
		change, isIncrease := formatChange(fromTotal, toTotal)
		results = append(results, AggregationResult{
			Label:      data.Labels[metric],
			Metric:     metric,
			From:       fromTotal,
			To:         toTotal,
			Change:     change,
			IsIncrease: isIncrease,
		})
	}
	return results
}

// sumPeriod totals one metric across all visible emails over a period token:
// an exact date key for day comparisons, a YYYY-MM or YYYY prefix otherwise.
func sumPeriod(data *CategoryData, visible map[string]struct{}, kind ComparisonKind, period, metric string, profile ScoringProfile) float64 {
	if period == "" {
		return 0
	}
	var total float64
	for email := range visible {
		days, ok := data.Records[strings.ToLower(email)]
		if !ok {
			continue
		}
		for dateKey, fields := range days {
			if !periodMatches(kind, period, dateKey) {
				continue
			}
			total += profile.Points(metric, fields[metric])
		}
	}
	return total
}

func periodMatches(kind ComparisonKind, period, dateKey string) bool {
	if dateKey == InvalidDateKey {
		return false
	}
	switch kind {
	case CompareDay:
		return dateKey == period
	case CompareMonth, CompareYear, CompareSingleMonth:
		return strings.HasPrefix(dateKey, period)
	}
	return false
}

// formatChange applies the house percentage rule. Growth from nothing and
// collapse to nothing are reported with infinity sentinels rather than
// dividing by zero; the denominator is always the from side.
func formatChange(from, to float64) (string, bool) {
	switch {
	case from == 0 && to > 0:
		return "∞% ↑", true
	case from > 0 && to == 0:
		return "-∞% ↓", false
	case from == to:
		return "0%", false
	}
	pct := ((to - from) / from) * 100
	if pct > 0 {
		return fmt.Sprintf("%.2f%% ↑", pct), true
	}
	return fmt.Sprintf("%.2f%% ↓", pct), false
}
