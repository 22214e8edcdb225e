package analysis_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nattycheck/api/internal/domain/analysis"
)

const validReport = `{
  "schemaVersion": 1,
  "completedAt": "2026-01-02T03:04:05Z",
  "confidence": 0.92,
  "overallScore": 83,
  "summary": {"upperBody": 86, "lowerBody": 79, "symmetry": 88, "posture": 90},
  "ratios": {"shoulderToWaist": 1.41, "quadToHeight": 0.58, "armToWaist": 0.39},
  "regions": {
    "upper": [{"name": "Shoulders", "ratio": 1.41, "percent": 90, "tag": "balanced"}],
    "lower": [{"name": "Quads", "ratio": 0.58, "percent": 83, "tag": "balanced"}]
  },
  "posture": {"grade": "Excellent", "spinalAlignmentDeltaDeg": 3, "scapularBalance": "Symmetrical"},
  "natty": {"status": "NATURAL", "confidence": 0.8},
  "quality": {
    "front": {"ok": true, "notes": []},
    "side": {"ok": true, "notes": []},
    "back": {"ok": true, "notes": []}
  }
}`

// withoutKey re-encodes validReport minus one top-level key.
func withoutKey(t *testing.T, key string) []byte {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(validReport), &m); err != nil {
		t.Fatalf("fixture is broken: %v", err)
	}
	delete(m, key)
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	return b
}

// withValue re-encodes validReport with one top-level key replaced.
func withValue(t *testing.T, key string, v any) []byte {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(validReport), &m); err != nil {
		t.Fatalf("fixture is broken: %v", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("encode value: %v", err)
	}
	m[key] = b
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	return out
}

func TestParseReport_Valid(t *testing.T) {
	r, err := analysis.ParseReport([]byte(validReport))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if r.OverallScore != 83 {
		t.Fatalf("expected overallScore=83, got %d", r.OverallScore)
	}
	if r.Confidence != 0.92 {
		t.Fatalf("expected confidence=0.92, got %v", r.Confidence)
	}
	if len(r.Regions.Upper) != 1 || r.Regions.Upper[0].Name != "Shoulders" {
		t.Fatalf("regions not parsed: %+v", r.Regions)
	}
	if r.Posture.Grade != "Excellent" {
		t.Fatalf("posture not parsed: %+v", r.Posture)
	}
}

func TestParseReport_MissingRequiredField(t *testing.T) {
	for _, key := range []string{"overallScore", "confidence", "summary", "ratios", "regions", "posture", "quality"} {
		raw := withoutKey(t, key)

		_, err := analysis.ParseReport(raw)
		var schemaErr *analysis.SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("key %s: expected *SchemaError, got %v", key, err)
		}
		if string(schemaErr.Raw) != string(raw) {
			t.Fatalf("key %s: raw payload not preserved", key)
		}
	}
}

func TestParseReport_OptionalFieldsTolerated(t *testing.T) {
	for _, key := range []string{"schemaVersion", "completedAt", "natty"} {
		if _, err := analysis.ParseReport(withoutKey(t, key)); err != nil {
			t.Fatalf("key %s should be optional, got %v", key, err)
		}
	}
}

func TestParseReport_NotJSON(t *testing.T) {
	_, err := analysis.ParseReport([]byte("I am not JSON, sorry"))
	if !errors.Is(err, analysis.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestParseReport_OutOfRange(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"score over 100", withValue(t, "overallScore", 101)},
		{"score negative", withValue(t, "overallScore", -1)},
		{"confidence over 1", withValue(t, "confidence", 1.5)},
		{"confidence negative", withValue(t, "confidence", -0.1)},
	}
	for _, tc := range cases {
		_, err := analysis.ParseReport(tc.raw)
		var schemaErr *analysis.SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("%s: expected *SchemaError, got %v", tc.name, err)
		}
	}
}

func TestValidate_RegionPercent(t *testing.T) {
	var r analysis.Report
	if err := json.Unmarshal([]byte(validReport), &r); err != nil {
		t.Fatalf("fixture is broken: %v", err)
	}
	r.Regions.Lower[0].Percent = 120
	if err := r.Validate(); err == nil {
		t.Fatal("expected an error for percent=120, got nil")
	}
}
