package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"dawah-report-api/models"

	"gorm.io/gorm"
)

// DisplayPlaceholder stands in for missing metrics in tables and PDFs. It is
// a presentation value only; aggregation treats the same absence as zero.
const DisplayPlaceholder = "-"

// RecordMeta carries the side-channel per (email, dateKey): raw list values
// for the detail modals and their numbered-HTML flattening for tables.
type RecordMeta struct {
	Lists map[string][]interface{} `json:"lists,omitempty"`
	HTML  map[string]string        `json:"html,omitempty"`
}

// CategoryData is the normalized shape every view works from:
// Records[email][dateKey] = metric fields.
type CategoryData struct {
	Category string                                 `json:"category"`
	Labels   map[string]string                      `json:"labels"`
	Order    []string                               `json:"order"`
	Records  map[string]map[string]models.MetricMap `json:"records"`
	Meta     map[string]map[string]RecordMeta       `json:"meta,omitempty"`
}

// NewCategoryData returns an empty but fully initialized CategoryData, the
// shape a failed fetch contributes.
func NewCategoryData(cat models.CategoryDef) *CategoryData {
	return &CategoryData{
		Category: cat.Key,
		Labels:   cat.LabelMap,
		Order:    cat.MetricOrder,
		Records:  make(map[string]map[string]models.MetricMap),
		Meta:     make(map[string]map[string]RecordMeta),
	}
}

// RecordSource abstracts where raw report rows come from: the local store or
// the legacy per-category REST endpoints.
type RecordSource interface {
	Fetch(ctx context.Context, cat models.CategoryDef, emails []string) ([]models.ReportRecord, error)
}

// StoreSource reads report rows from the local database.
type StoreSource struct {
	DB *gorm.DB
}

func (s StoreSource) Fetch(ctx context.Context, cat models.CategoryDef, emails []string) ([]models.ReportRecord, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var records []models.ReportRecord
	err := s.DB.WithContext(ctx).
		Where("category = ? AND email IN ?", cat.Key, emails).
		Find(&records).Error
	return records, err
}

// LegacySource pulls rows from the old per-category REST endpoints using the
// batched ?emails=csv form. It tolerates both response shapes that API has
// produced over time: {"records": [...]} and a bare array.
type LegacySource struct {
	BaseURL string
	Client  *http.Client
}

func (s LegacySource) Fetch(ctx context.Context, cat models.CategoryDef, emails []string) ([]models.ReportRecord, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	endpoint := strings.TrimRight(s.BaseURL, "/") + cat.Endpoint +
		"?emails=" + url.QueryEscape(strings.Join(emails, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d", cat.Key, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeLegacyRecords(cat.Key, body)
}

func decodeLegacyRecords(category string, body []byte) ([]models.ReportRecord, error) {
	var raw []map[string]interface{}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("%s: decode array: %w", category, err)
		}
	} else {
		var wrapped struct {
			Records []map[string]interface{} `json:"records"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("%s: decode object: %w", category, err)
		}
		raw = wrapped.Records
	}

	records := make([]models.ReportRecord, 0, len(raw))
	for _, row := range raw {
		email, _ := row["email"].(string)
		date, _ := row["date"].(string)
		fields := make(models.MetricMap, len(row))
		for k, v := range row {
			switch k {
			case "email", "date", "_id", "id":
			default:
				fields[k] = v
			}
		}
		editor, _ := fields["editorContent"].(string)
		delete(fields, "editorContent")
		records = append(records, models.ReportRecord{
			Category:      category,
			Email:         email,
			ReportDate:    DateKeyFromString(date),
			Fields:        fields,
			EditorContent: editor,
		})
	}
	return records, nil
}

// Normalize reshapes flat rows into CategoryData, re-keying by Dhaka calendar
// day and splitting list-valued metrics into the meta side-channel. Rows with
// unusable dates or no email are dropped.
func Normalize(cat models.CategoryDef, rows []models.ReportRecord) *CategoryData {
	data := NewCategoryData(cat)
	for _, row := range rows {
		email := strings.ToLower(strings.TrimSpace(row.Email))
		if email == "" {
			continue
		}
		key := row.ReportDate
		if !ValidDateKey(key) {
			key = DateKeyFromString(key)
		}
		if !ValidDateKey(key) {
			continue
		}

		if data.Records[email] == nil {
			data.Records[email] = make(map[string]models.MetricMap)
		}
		fields := make(models.MetricMap, len(row.Fields))
		for k, v := range row.Fields {
			fields[k] = v
		}
		data.Records[email][key] = fields

		for _, metric := range cat.ListFields {
			list, ok := fields[metric].([]interface{})
			if !ok || len(list) == 0 {
				continue
			}
			if data.Meta[email] == nil {
				data.Meta[email] = make(map[string]RecordMeta)
			}
			meta := data.Meta[email][key]
			if meta.Lists == nil {
				meta.Lists = make(map[string][]interface{})
				meta.HTML = make(map[string]string)
			}
			meta.Lists[metric] = list
			meta.HTML[metric] = numberedHTML(list)
			data.Meta[email][key] = meta
		}
	}
	return data
}

// numberedHTML flattens a list value into the "1. x<br/>2. y" string the
// tables render.
func numberedHTML(list []interface{}) string {
	var b strings.Builder
	for i, item := range list {
		if i > 0 {
			b.WriteString("<br/>")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, itemLabel(item))
	}
	return b.String()
}

func itemLabel(item interface{}) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]interface{}:
		if name, ok := v["name"].(string); ok && name != "" {
			return name
		}
	}
	return fmt.Sprint(item)
}

// DisplayValue is what a table cell shows for one metric: the stored value,
// or the placeholder when the metric is absent or empty. Distinct from the
// zero that aggregation uses for the same absence.
func DisplayValue(fields models.MetricMap, metric string) string {
	if fields == nil {
		return DisplayPlaceholder
	}
	v, ok := fields[metric]
	if !ok || v == nil {
		return DisplayPlaceholder
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return DisplayPlaceholder
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		if len(t) == 0 {
			return DisplayPlaceholder
		}
		return numberedHTML(t)
	}
	return fmt.Sprint(v)
}

// FetchAll pulls and normalizes every category for the given emails
// concurrently. Failures are isolated per category: a broken endpoint or
// table is logged and contributes an empty slice, it never aborts the other
// categories. Cancelling ctx stops the whole fan-out.
func FetchAll(ctx context.Context, source RecordSource, cats []models.CategoryDef, emails []string) map[string]*CategoryData {
	results := make([]*CategoryData, len(cats))

	var wg sync.WaitGroup
	for i, cat := range cats {
		wg.Add(1)
		go func(i int, cat models.CategoryDef) {
			defer wg.Done()
			rows, err := source.Fetch(ctx, cat, emails)
			if err != nil {
				log.Printf("fetch %s: %v", cat.Key, err)
				results[i] = NewCategoryData(cat)
				return
			}
			results[i] = Normalize(cat, rows)
		}(i, cat)
	}
	wg.Wait()

	out := make(map[string]*CategoryData, len(cats))
	for i, cat := range cats {
		out[cat.Key] = results[i]
	}
	return out
}
