package services

import (
	"fmt"

	"dawah-report-api/models"
)

// FilterToMonth returns a copy of data holding only the date keys of the
// given Dhaka month. Emails left with no matching days are dropped entirely,
// so the tally cards and the charts can both range over the result without
// re-checking for empties. The input is not modified.
func FilterToMonth(data *CategoryData, year, month int) *CategoryData {
	if data == nil {
		return nil
	}
	prefix := MonthPrefix(year, month)

	out := &CategoryData{
		Category: data.Category,
		Labels:   data.Labels,
		Order:    data.Order,
		Records:  make(map[string]map[string]models.MetricMap),
		Meta:     make(map[string]map[string]RecordMeta),
	}
	for email, days := range data.Records {
		for dateKey, fields := range days {
			if len(dateKey) < len(prefix) || dateKey[:len(prefix)] != prefix {
				continue
			}
			if out.Records[email] == nil {
				out.Records[email] = make(map[string]models.MetricMap)
			}
			out.Records[email][dateKey] = fields
			if meta, ok := data.Meta[email][dateKey]; ok {
				if out.Meta[email] == nil {
					out.Meta[email] = make(map[string]RecordMeta)
				}
				out.Meta[email][dateKey] = meta
			}
		}
	}
	return out
}

// MetricTotal is one tally card: a metric, its label and the period total.
type MetricTotal struct {
	Metric string  `json:"metric"`
	Label  string  `json:"label"`
	Total  float64 `json:"total"`
}

// MonthlyTotals sums every metric of data across all contained records using
// the given profile. Meant to be fed data already narrowed by FilterToMonth.
func MonthlyTotals(data *CategoryData, profile ScoringProfile) []MetricTotal {
	if data == nil {
		return nil
	}
	totals := make([]MetricTotal, 0, len(data.Order))
	for _, metric := range data.Order {
		var sum float64
		for _, days := range data.Records {
			for _, fields := range days {
				sum += profile.Points(metric, fields[metric])
			}
		}
		totals = append(totals, MetricTotal{
			Metric: metric,
			Label:  data.Labels[metric],
			Total:  sum,
		})
	}
	return totals
}

// TableRow is one row of the per-user report table for a single day.
type TableRow struct {
	Email  string            `json:"email"`
	Date   string            `json:"date"`
	Cells  map[string]string `json:"cells"`
	Editor string            `json:"editor,omitempty"`
}

// TableRows flattens data into display rows, one per (email, day), with
// every metric rendered through DisplayValue and list metrics replaced by
// their numbered-HTML form from the meta side-channel.
func TableRows(data *CategoryData) []TableRow {
	if data == nil {
		return nil
	}
	rows := make([]TableRow, 0)
	for email, days := range data.Records {
		for dateKey, fields := range days {
			cells := make(map[string]string, len(data.Order))
			for _, metric := range data.Order {
				if meta, ok := data.Meta[email][dateKey]; ok {
					if html, ok := meta.HTML[metric]; ok {
						cells[metric] = html
						continue
					}
				}
				cells[metric] = DisplayValue(fields, metric)
			}
			rows = append(rows, TableRow{
				Email: email,
				Date:  dateKey,
				Cells: cells,
			})
		}
	}
	return rows
}

// PeriodToken builds the from/to token for a comparison kind out of its
// numeric parts, e.g. (month, 2025, 1) -> "2025-01".
func PeriodToken(kind ComparisonKind, year, month, day int) string {
	switch kind {
	case CompareYear:
		return fmt.Sprintf("%04d", year)
	case CompareMonth, CompareSingleMonth:
		return fmt.Sprintf("%04d-%02d", year, month)
	case CompareDay:
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	return ""
}
