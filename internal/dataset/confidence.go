package dataset

import "encoding/json"

// Confidence is the label attached to a synthesis. Anything outside the
// enumerated set degrades to ConfidenceUnset when parsed; callers must
// handle the unset case explicitly.
type Confidence string

const (
	ConfidenceUnset  Confidence = ""
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence maps a raw value to a Confidence, degrading unknown
// values to ConfidenceUnset rather than failing.
func ParseConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return Confidence(s)
	default:
		return ConfidenceUnset
	}
}

// MarshalJSON writes unset confidence as null, matching the persisted
// checkpoint format.
func (c Confidence) MarshalJSON() ([]byte, error) {
	if c == ConfidenceUnset {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON accepts null and any string, degrading unknown values to
// unset so malformed persisted state never aborts a reload.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ConfidenceUnset
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*c = ConfidenceUnset
		return nil
	}
	*c = ParseConfidence(s)
	return nil
}
