package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dawah-report-api/models"
)

type fakeSource struct {
	rows map[string][]models.ReportRecord
	errs map[string]error
}

func (f fakeSource) Fetch(_ context.Context, cat models.CategoryDef, _ []string) ([]models.ReportRecord, error) {
	if err := f.errs[cat.Key]; err != nil {
		return nil, err
	}
	return f.rows[cat.Key], nil
}

func pickCategories(t *testing.T, keys ...string) []models.CategoryDef {
	t.Helper()
	cats := make([]models.CategoryDef, 0, len(keys))
	for _, k := range keys {
		cat, ok := models.CategoryByKey(k)
		if !ok {
			t.Fatalf("unknown category %s", k)
		}
		cats = append(cats, cat)
	}
	return cats
}

func TestFetchAllSettlesDespiteFailures(t *testing.T) {
	source := fakeSource{
		rows: map[string][]models.ReportRecord{
			"moktob": {{Email: "d@x.com", ReportDate: "2025-01-10", Fields: models.MetricMap{"totalMoktob": float64(2)}}},
			"talim":  {{Email: "d@x.com", ReportDate: "2025-01-10", Fields: models.MetricMap{"mohilaTalim": float64(1)}}},
		},
		errs: map[string]error{
			"dawati": errors.New("endpoint down"),
		},
	}

	fetched := FetchAll(context.Background(), source, pickCategories(t, "moktob", "dawati", "talim"), []string{"d@x.com"})

	if len(fetched) != 3 {
		t.Fatalf("got %d categories, want 3", len(fetched))
	}
	if len(fetched["moktob"].Records["d@x.com"]) != 1 {
		t.Error("moktob data lost")
	}
	if len(fetched["talim"].Records["d@x.com"]) != 1 {
		t.Error("talim data lost")
	}
	// The failed category contributes an empty, usable result.
	failed := fetched["dawati"]
	if failed == nil || failed.Records == nil {
		t.Fatal("failed category must contribute an empty result, not nil")
	}
	if len(failed.Records) != 0 {
		t.Fatalf("failed category has records: %v", failed.Records)
	}

	// Aggregating over the surviving categories still works.
	visible := visibleSet("d@x.com")
	results := Compare(fetched["moktob"], visible, CompareDay, "2025-01-10", "2025-01-11", ComparisonScoring)
	if resultFor(t, results, "totalMoktob").From != 2 {
		t.Fatal("aggregation over surviving category broken")
	}
}

func TestLegacySourceWrappedAndBareShapes(t *testing.T) {
	wrapped := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("emails"); got != "d@x.com" {
			t.Errorf("emails query = %q", got)
		}
		w.Write([]byte(`{"records":[{"email":"d@x.com","date":"2025-01-15T18:00:00Z","tahajjud":12,"editorContent":"<p>x</p>"}],"isSubmittedToday":true}`))
	}))
	defer wrapped.Close()

	cat, _ := models.CategoryByKey("amoli")
	source := LegacySource{BaseURL: wrapped.URL}

	rows, err := source.Fetch(context.Background(), cat, []string{"d@x.com"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	// 18:00 UTC is past midnight in Dhaka.
	if rows[0].ReportDate != "2025-01-16" {
		t.Errorf("date key = %q, want 2025-01-16", rows[0].ReportDate)
	}
	if rows[0].EditorContent != "<p>x</p>" {
		t.Errorf("editor content = %q", rows[0].EditorContent)
	}
	if _, ok := rows[0].Fields["tahajjud"]; !ok {
		t.Error("metric field lost")
	}

	bare := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"email":"d@x.com","date":"2025-01-15","tahajjud":3}]`))
	}))
	defer bare.Close()

	rows, err = LegacySource{BaseURL: bare.URL}.Fetch(context.Background(), cat, []string{"d@x.com"})
	if err != nil {
		t.Fatalf("bare array Fetch: %v", err)
	}
	if len(rows) != 1 || rows[0].ReportDate != "2025-01-15" {
		t.Fatalf("bare array rows = %+v", rows)
	}
}

func TestLegacySourceNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	cat, _ := models.CategoryByKey("amoli")
	if _, err := (LegacySource{BaseURL: srv.URL}).Fetch(context.Background(), cat, []string{"d@x.com"}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestLegacySourceCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat, _ := models.CategoryByKey("amoli")
	if _, err := (LegacySource{BaseURL: srv.URL}).Fetch(ctx, cat, []string{"d@x.com"}); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestNormalizeListMeta(t *testing.T) {
	cat, _ := models.CategoryByKey("moktob")
	rows := []models.ReportRecord{{
		Email:      "D@X.com",
		ReportDate: "2025-01-10",
		Fields: models.MetricMap{
			"totalMoktob":      float64(2),
			"madrasaVisitList": []interface{}{"Darul Uloom", map[string]interface{}{"name": "Jamia Islamia"}},
		},
	}}

	data := Normalize(cat, rows)

	// Emails are normalized to lower case at the boundary.
	fields, ok := data.Records["d@x.com"]["2025-01-10"]
	if !ok {
		t.Fatalf("record not keyed by lowercase email: %v", data.Records)
	}
	if _, ok := fields["madrasaVisitList"].([]interface{}); !ok {
		t.Error("raw list value must survive in the record")
	}

	meta, ok := data.Meta["d@x.com"]["2025-01-10"]
	if !ok {
		t.Fatal("list meta missing")
	}
	if len(meta.Lists["madrasaVisitList"]) != 2 {
		t.Error("raw list missing from meta")
	}
	want := "1. Darul Uloom<br/>2. Jamia Islamia"
	if meta.HTML["madrasaVisitList"] != want {
		t.Errorf("numbered html = %q, want %q", meta.HTML["madrasaVisitList"], want)
	}
}

func TestNormalizeDropsUnusableRows(t *testing.T) {
	cat, _ := models.CategoryByKey("amoli")
	rows := []models.ReportRecord{
		{Email: "", ReportDate: "2025-01-10", Fields: models.MetricMap{"tahajjud": float64(1)}},
		{Email: "d@x.com", ReportDate: "garbage", Fields: models.MetricMap{"tahajjud": float64(1)}},
		{Email: "d@x.com", ReportDate: "2025-01-15T18:00:00Z", Fields: models.MetricMap{"tahajjud": float64(1)}},
	}

	data := Normalize(cat, rows)
	if len(data.Records) != 1 {
		t.Fatalf("records = %v, want only d@x.com", data.Records)
	}
	// The RFC3339 date is re-keyed to the Dhaka day rather than dropped.
	if _, ok := data.Records["d@x.com"]["2025-01-16"]; !ok {
		t.Fatalf("timestamp row not re-keyed: %v", data.Records["d@x.com"])
	}
}

func TestDisplayValueVersusAggregationZero(t *testing.T) {
	fields := models.MetricMap{"tahajjud": "", "jamat": float64(3)}

	// Missing and empty metrics display as the placeholder...
	if got := DisplayValue(fields, "tahajjud"); got != DisplayPlaceholder {
		t.Errorf("empty metric displays %q, want %q", got, DisplayPlaceholder)
	}
	if got := DisplayValue(fields, "zikir"); got != DisplayPlaceholder {
		t.Errorf("absent metric displays %q, want %q", got, DisplayPlaceholder)
	}
	if got := DisplayValue(nil, "zikir"); got != DisplayPlaceholder {
		t.Errorf("nil fields display %q, want %q", got, DisplayPlaceholder)
	}
	if got := DisplayValue(fields, "jamat"); got != "3" {
		t.Errorf("number displays %q, want 3", got)
	}

	// ...but aggregate as zero, not as the placeholder string.
	if got := ComparisonScoring.Points("tahajjud", fields["tahajjud"]); got != 0 {
		t.Errorf("empty metric aggregates as %v, want 0", got)
	}
	if got := ComparisonScoring.Points("zikir", fields["zikir"]); got != 0 {
		t.Errorf("absent metric aggregates as %v, want 0", got)
	}
	if got := ComparisonScoring.Points("anything", DisplayPlaceholder); got != 0 {
		t.Errorf("placeholder string aggregates as %v, want 0", got)
	}
}

func TestNumberedHTMLOrdering(t *testing.T) {
	got := numberedHTML([]interface{}{"a", "b", "c"})
	if !strings.HasPrefix(got, "1. a") || !strings.Contains(got, "2. b") || !strings.HasSuffix(got, "3. c") {
		t.Fatalf("numbered html = %q", got)
	}
}
