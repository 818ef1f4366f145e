// Package segment drives the per-segment answer synthesis, persisting a
// JSON checkpoint per segment so interrupted runs resume without
// recomputation.
package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nagoli/user-research-helper/internal/dataset"
)

// checkpointFile is the persisted shape of one segment's completed work.
type checkpointFile struct {
	SegmentName string                            `json:"segment_name"`
	Answers     map[string]*dataset.SegmentAnswer `json:"answers"`
}

// persistedAnswer defers answer_summary decoding: legacy checkpoints stored
// the summary as a mapping keyed by sub-part instead of a plain string.
type persistedAnswer struct {
	SegmentName       string             `json:"segment_name"`
	QuestionID        string             `json:"question_id"`
	AnswerSummary     json.RawMessage    `json:"answer_summary"`
	RoughAnswers      []string           `json:"rough_answers"`
	SummaryConfidence dataset.Confidence `json:"summary_confidence"`
}

// SaveCheckpoint writes a segment's full current state. It is called after
// every single synthesis so a crash loses at most one unit of work.
func SaveCheckpoint(path, segmentName string, answers map[string]*dataset.SegmentAnswer) error {
	data, err := json.MarshalIndent(checkpointFile{SegmentName: segmentName, Answers: answers}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling checkpoint: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads a segment checkpoint, flattening legacy map-shaped
// summaries into newline-joined text.
func LoadCheckpoint(path string) (map[string]*dataset.SegmentAnswer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checkpoint: %w", err)
	}

	var file struct {
		SegmentName string                      `json:"segment_name"`
		Answers     map[string]*persistedAnswer `json:"answers"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing checkpoint: %w", err)
	}

	answers := make(map[string]*dataset.SegmentAnswer, len(file.Answers))
	for qid, pa := range file.Answers {
		answers[qid] = &dataset.SegmentAnswer{
			SegmentName:       pa.SegmentName,
			QuestionID:        pa.QuestionID,
			AnswerSummary:     flattenSummary(pa.AnswerSummary),
			RoughAnswers:      pa.RoughAnswers,
			SummaryConfidence: pa.SummaryConfidence,
		}
	}
	return answers, nil
}

// flattenSummary decodes an answer summary that is either a plain string or
// a legacy mapping. Map values are joined with newlines in the order the
// keys appear in the document.
func flattenSummary(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
		return ""
	}

	if trimmed[0] != '{' {
		return string(trimmed)
	}

	// Token-level decoding keeps the document's key order, which a plain
	// map unmarshal would lose.
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return ""
	}
	var parts []string
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			break
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			break
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, "\n")
}
