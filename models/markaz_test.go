package models

import (
	"encoding/json"
	"testing"
)

func TestMarkazRefAcceptsBothShapes(t *testing.T) {
	var legacy MarkazRef
	if err := json.Unmarshal([]byte(`"Markaz A"`), &legacy); err != nil {
		t.Fatalf("legacy string: %v", err)
	}
	if legacy.Name != "Markaz A" || legacy.ID != "" {
		t.Fatalf("legacy = %+v", legacy)
	}

	var relation MarkazRef
	if err := json.Unmarshal([]byte(`{"id":"m1","name":"Markaz A"}`), &relation); err != nil {
		t.Fatalf("relation: %v", err)
	}
	if relation.ID != "m1" || relation.Name != "Markaz A" {
		t.Fatalf("relation = %+v", relation)
	}

	// Numeric ids appear in exports from the old database.
	var numeric MarkazRef
	if err := json.Unmarshal([]byte(`{"id":7,"name":"Markaz B"}`), &numeric); err != nil {
		t.Fatalf("numeric id: %v", err)
	}
	if numeric.ID != "7" {
		t.Fatalf("numeric id = %q", numeric.ID)
	}

	var null MarkazRef
	if err := json.Unmarshal([]byte(`null`), &null); err != nil {
		t.Fatalf("null: %v", err)
	}
	if !null.IsZero() {
		t.Fatalf("null = %+v", null)
	}
}

func TestMarkazRefRoundTripPreservesShape(t *testing.T) {
	legacy := MarkazRef{Name: "Markaz A"}
	b, err := json.Marshal(legacy)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"Markaz A"` {
		t.Fatalf("legacy marshals to %s, must stay a bare string", b)
	}

	relation := MarkazRef{ID: "m1", Name: "Markaz A"}
	b, err = json.Marshal(relation)
	if err != nil {
		t.Fatal(err)
	}
	var back MarkazRef
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != relation {
		t.Fatalf("round trip = %+v, want %+v", back, relation)
	}
}

func TestMarkazRefScanPlainName(t *testing.T) {
	var m MarkazRef
	if err := m.Scan("Old Markaz"); err != nil {
		t.Fatal(err)
	}
	if m.Name != "Old Markaz" || m.ID != "" {
		t.Fatalf("scanned = %+v", m)
	}

	var fromJSON MarkazRef
	if err := fromJSON.Scan([]byte(`{"id":"m1","name":"New"}`)); err != nil {
		t.Fatal(err)
	}
	if fromJSON.ID != "m1" {
		t.Fatalf("scanned json = %+v", fromJSON)
	}

	var null MarkazRef
	if err := null.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if !null.IsZero() {
		t.Fatalf("scanned nil = %+v", null)
	}
}

func TestMetricMapScanValue(t *testing.T) {
	m := MetricMap{"tahajjud": float64(12), "zikir": "সকাল"}
	v, err := m.Value()
	if err != nil {
		t.Fatal(err)
	}

	var back MetricMap
	if err := back.Scan(v); err != nil {
		t.Fatal(err)
	}
	if back["zikir"] != "সকাল" || back["tahajjud"] != float64(12) {
		t.Fatalf("round trip = %v", back)
	}

	var null MetricMap
	if err := null.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if null != nil {
		t.Fatalf("scanned nil = %v", null)
	}
}
