package models

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONValueRoundTrip(t *testing.T) {
	raw := []byte(`{"startTime":"08:00","endTime":"08:30","lateThreshold":30}`)

	var v JSONValue
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("round trip changed bytes: %s != %s", out, raw)
	}
}

func TestJSONValueScanValue(t *testing.T) {
	var v JSONValue
	if err := v.Scan([]byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	dv, err := v.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if dv != "[1,2,3]" {
		t.Errorf("Value() = %v, want [1,2,3]", dv)
	}

	if err := v.Scan("\"str\""); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if string(v) != "\"str\"" {
		t.Errorf("Scan string kept %q", v)
	}

	if err := v.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if v != nil {
		t.Errorf("Scan(nil) kept %q", v)
	}
}

func TestJSONValueEmptyMarshalsNull(t *testing.T) {
	out, err := json.Marshal(JSONValue(nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("empty value marshaled as %s, want null", out)
	}
}
