package dataset

import (
	"encoding/json"
	"testing"
)

func TestParseConfidence(t *testing.T) {
	cases := map[string]Confidence{
		"low":      ConfidenceLow,
		"medium":   ConfidenceMedium,
		"high":     ConfidenceHigh,
		"":         ConfidenceUnset,
		"HIGH":     ConfidenceUnset,
		"whatever": ConfidenceUnset,
	}
	for input, want := range cases {
		if got := ParseConfidence(input); got != want {
			t.Errorf("ParseConfidence(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestConfidenceMarshalUnset(t *testing.T) {
	data, err := json.Marshal(ConfidenceUnset)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "null" {
		t.Errorf("expected null, got %s", data)
	}
}

func TestConfidenceUnmarshal(t *testing.T) {
	var c Confidence
	if err := json.Unmarshal([]byte(`"high"`), &c); err != nil {
		t.Fatal(err)
	}
	if c != ConfidenceHigh {
		t.Errorf("expected high, got %q", c)
	}

	if err := json.Unmarshal([]byte("null"), &c); err != nil {
		t.Fatal(err)
	}
	if c != ConfidenceUnset {
		t.Errorf("expected unset for null, got %q", c)
	}

	if err := json.Unmarshal([]byte(`"bogus"`), &c); err != nil {
		t.Fatal(err)
	}
	if c != ConfidenceUnset {
		t.Errorf("expected unset for unknown value, got %q", c)
	}

	if err := json.Unmarshal([]byte("42"), &c); err != nil {
		t.Fatal(err)
	}
	if c != ConfidenceUnset {
		t.Errorf("expected unset for non-string, got %q", c)
	}
}
