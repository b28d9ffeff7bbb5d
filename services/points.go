package services

import (
	"strconv"
	"strings"
)

// Bengali answer tokens used by the report forms.
const (
	tokenYes          = "হ্যাঁ"
	tokenNo           = "না"
	tokenMorning      = "সকাল"
	tokenEvening      = "সন্ধ্যা"
	tokenBothSessions = "সকাল-সন্ধ্যা"
)

// ScoringProfile converts a raw metric value to points. Two profiles exist
// because the forms and the comparison dashboards historically used different
// scales; a call site must name the one it wants.
//
// FormScoring is the absolute-points scale used when scoring a single day's
// amal sheet: everything lands on 0..5.
//
// ComparisonScoring is the scale used when summing across days and users for
// the admin comparison views: enum answers collapse to small fixed credits
// and counted metrics pass through raw, so a month of data keeps its
// magnitude.
type ScoringProfile struct {
	name          string
	zikirBoth     float64
	zikirSingle   float64
	yesCredit     float64
	textCredit    float64
	tieredTahajud bool
}

var (
	FormScoring = ScoringProfile{
		name:          "form",
		zikirBoth:     5,
		zikirSingle:   3,
		yesCredit:     5,
		textCredit:    5,
		tieredTahajud: true,
	}

	ComparisonScoring = ScoringProfile{
		name:          "comparison",
		zikirBoth:     2,
		zikirSingle:   1,
		yesCredit:     1,
		textCredit:    1,
		tieredTahajud: false,
	}
)

func (p ScoringProfile) String() string { return p.name }

// binaryMetrics answer হ্যাঁ/না on the forms.
var binaryMetrics = map[string]bool{
	"Dua":         true,
	"tasbih":      true,
	"amoliSura":   true,
	"hijbulBahar": true,
	"dayeeAmol":   true,
	"ayamroja":    true,
}

// presenceMetrics are free-text fields that score on being filled in at all.
var presenceMetrics = map[string]bool{
	"surah":  true,
	"ishraq": true,
	"ilm":    true,
	"sirat":  true,
}

// Points converts one raw metric value to a point score. It is pure and
// total: nil, empty strings, lists, negative numbers and arbitrary garbage
// all map to a number, never a panic.
func (p ScoringProfile) Points(metric string, raw interface{}) float64 {
	switch metric {
	case "zikir":
		return p.zikirPoints(raw)
	case "ayat":
		return p.ayatPoints(raw)
	case "jamat":
		return jamatPoints(raw)
	case "tahajjud":
		return p.tahajjudPoints(raw)
	}
	if binaryMetrics[metric] {
		if asText(raw) == tokenYes {
			return p.yesCredit
		}
		return 0
	}
	if presenceMetrics[metric] {
		return p.presencePoints(raw)
	}
	// Default rule: numbers count as themselves, anything else non-empty
	// earns the fixed credit.
	if n, ok := asNumber(raw); ok {
		return n
	}
	if list, ok := raw.([]interface{}); ok {
		return float64(len(list))
	}
	return p.presencePoints(raw)
}

func (p ScoringProfile) zikirPoints(raw interface{}) float64 {
	switch asText(raw) {
	case tokenBothSessions:
		return p.zikirBoth
	case tokenMorning, tokenEvening:
		return p.zikirSingle
	}
	return 0
}

// ayatPoints credits a verse range like "10-20" with its span. A lone number
// is not a range and scores 0; other non-empty text gets the minimal credit.
func (p ScoringProfile) ayatPoints(raw interface{}) float64 {
	text := asText(raw)
	if text == "" || text == tokenNo {
		return 0
	}
	if i := strings.Index(text, "-"); i > 0 {
		start, err1 := strconv.ParseFloat(strings.TrimSpace(text[:i]), 64)
		end, err2 := strconv.ParseFloat(strings.TrimSpace(text[i+1:]), 64)
		if err1 == nil && err2 == nil {
			if end > start {
				return end - start
			}
			return start - end
		}
	}
	if _, isNumber := asNumber(raw); isNumber {
		return 0
	}
	return p.textCredit
}

// jamatPoints is the daily count of prayers in congregation, valid 0..5.
// Anything outside the range is a form glitch and scores 0.
func jamatPoints(raw interface{}) float64 {
	n, ok := asNumber(raw)
	if !ok || n < 0 || n > 5 {
		return 0
	}
	return n
}

func (p ScoringProfile) tahajjudPoints(raw interface{}) float64 {
	n, ok := asNumber(raw)
	if !ok {
		return 0
	}
	if !p.tieredTahajud {
		if n < 0 {
			return 0
		}
		return n
	}
	switch {
	case n >= 20:
		return 5
	case n >= 10:
		return 3
	case n >= 1:
		return 2
	default:
		return 0
	}
}

func (p ScoringProfile) presencePoints(raw interface{}) float64 {
	text := asText(raw)
	if text == "" || text == tokenNo || text == "-" {
		return 0
	}
	return p.textCredit
}

// asNumber extracts a float from the shapes JSON decoding produces.
func asNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func asText(raw interface{}) string {
	s, _ := raw.(string)
	return strings.TrimSpace(s)
}
