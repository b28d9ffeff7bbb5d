package services

import "testing"

func TestPointsTotality(t *testing.T) {
	// Every metric must produce a number for every garbage value, never panic.
	metrics := []string{"zikir", "ayat", "jamat", "tahajjud", "Dua", "surah", "totalStudent", "whatever"}
	values := []interface{}{
		nil, "", "না", "garbage", -3.5, float64(-1), "  ",
		[]interface{}{"a", "b"}, map[string]interface{}{"x": 1}, true,
	}
	for _, profile := range []ScoringProfile{FormScoring, ComparisonScoring} {
		for _, metric := range metrics {
			for _, v := range values {
				got := profile.Points(metric, v)
				if got != got { // NaN guard
					t.Fatalf("%s.Points(%q, %#v) = NaN", profile, metric, v)
				}
			}
		}
	}
}

func TestPointsDeterministic(t *testing.T) {
	a := FormScoring.Points("tahajjud", 15)
	b := FormScoring.Points("tahajjud", 15)
	if a != b {
		t.Fatalf("non-deterministic: %v vs %v", a, b)
	}
}

func TestTahajjudTiers(t *testing.T) {
	tests := []struct {
		raw  interface{}
		want float64
	}{
		{float64(25), 5},
		{float64(20), 5},
		{15, 3},
		{float64(10), 3},
		{"5", 2},
		{float64(1), 2},
		{float64(0), 0},
		{float64(-4), 0},
		{"nope", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := FormScoring.Points("tahajjud", tt.raw); got != tt.want {
			t.Errorf("FormScoring tahajjud %#v = %v, want %v", tt.raw, got, tt.want)
		}
	}

	// Comparison mode passes the raw count through.
	if got := ComparisonScoring.Points("tahajjud", float64(15)); got != 15 {
		t.Errorf("ComparisonScoring tahajjud 15 = %v, want 15", got)
	}
	if got := ComparisonScoring.Points("tahajjud", float64(-2)); got != 0 {
		t.Errorf("ComparisonScoring tahajjud -2 = %v, want 0", got)
	}
}

func TestJamatClampedRange(t *testing.T) {
	if got := FormScoring.Points("jamat", float64(7)); got != 0 {
		t.Fatalf("jamat 7 = %v, want 0 (outside 0..5)", got)
	}
	if got := FormScoring.Points("jamat", float64(5)); got != 5 {
		t.Fatalf("jamat 5 = %v, want 5", got)
	}
	if got := FormScoring.Points("jamat", "3"); got != 3 {
		t.Fatalf("jamat \"3\" = %v, want 3", got)
	}
	if got := FormScoring.Points("jamat", float64(-1)); got != 0 {
		t.Fatalf("jamat -1 = %v, want 0", got)
	}
}

func TestZikirEnum(t *testing.T) {
	tests := []struct {
		raw      string
		form     float64
		compare  float64
	}{
		{"সকাল-সন্ধ্যা", 5, 2},
		{"সকাল", 3, 1},
		{"সন্ধ্যা", 3, 1},
		{"না", 0, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		if got := FormScoring.Points("zikir", tt.raw); got != tt.form {
			t.Errorf("FormScoring zikir %q = %v, want %v", tt.raw, got, tt.form)
		}
		if got := ComparisonScoring.Points("zikir", tt.raw); got != tt.compare {
			t.Errorf("ComparisonScoring zikir %q = %v, want %v", tt.raw, got, tt.compare)
		}
	}
}

func TestAyatRange(t *testing.T) {
	if got := ComparisonScoring.Points("ayat", "10-20"); got != 10 {
		t.Fatalf("ayat 10-20 = %v, want 10", got)
	}
	if got := ComparisonScoring.Points("ayat", "20-10"); got != 10 {
		t.Fatalf("ayat 20-10 = %v, want 10 (absolute span)", got)
	}
	if got := ComparisonScoring.Points("ayat", "15"); got != 0 {
		t.Fatalf("ayat single number = %v, want 0", got)
	}
	if got := ComparisonScoring.Points("ayat", "সূরা ইয়াসিন"); got != 1 {
		t.Fatalf("ayat free text = %v, want minimal credit 1", got)
	}
	if got := FormScoring.Points("ayat", ""); got != 0 {
		t.Fatalf("ayat empty = %v, want 0", got)
	}
}

func TestBinaryMetrics(t *testing.T) {
	for _, metric := range []string{"Dua", "tasbih", "amoliSura", "hijbulBahar", "dayeeAmol", "ayamroja"} {
		if got := FormScoring.Points(metric, "হ্যাঁ"); got != 5 {
			t.Errorf("FormScoring %s yes = %v, want 5", metric, got)
		}
		if got := ComparisonScoring.Points(metric, "হ্যাঁ"); got != 1 {
			t.Errorf("ComparisonScoring %s yes = %v, want 1", metric, got)
		}
		if got := FormScoring.Points(metric, "না"); got != 0 {
			t.Errorf("%s no = %v, want 0", metric, got)
		}
		if got := FormScoring.Points(metric, "yes"); got != 0 {
			t.Errorf("%s english yes = %v, want 0", metric, got)
		}
	}
}

func TestPresenceMetrics(t *testing.T) {
	for _, metric := range []string{"surah", "ishraq", "ilm", "sirat"} {
		if got := ComparisonScoring.Points(metric, "সূরা মুলক"); got != 1 {
			t.Errorf("%s filled = %v, want 1", metric, got)
		}
		if got := ComparisonScoring.Points(metric, "না"); got != 0 {
			t.Errorf("%s না = %v, want 0", metric, got)
		}
		if got := ComparisonScoring.Points(metric, ""); got != 0 {
			t.Errorf("%s empty = %v, want 0", metric, got)
		}
	}
}

func TestDefaultMetricRule(t *testing.T) {
	// Numbers and numeric strings count as themselves.
	if got := ComparisonScoring.Points("totalStudent", "42"); got != 42 {
		t.Fatalf("numeric string = %v, want 42", got)
	}
	if got := ComparisonScoring.Points("totalStudent", float64(7)); got != 7 {
		t.Fatalf("number = %v, want 7", got)
	}
	// Lists count their entries.
	if got := ComparisonScoring.Points("madrasaVisitList", []interface{}{"a", "b", "c"}); got != 3 {
		t.Fatalf("list = %v, want 3", got)
	}
	// Anything else non-empty earns the fixed credit.
	if got := ComparisonScoring.Points("someNote", "কিছু লেখা"); got != 1 {
		t.Fatalf("free text = %v, want 1", got)
	}
	if got := ComparisonScoring.Points("someNote", ""); got != 0 {
		t.Fatalf("empty = %v, want 0", got)
	}
}
