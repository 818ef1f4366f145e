// Package dataset holds the layered data model of a research campaign:
// interviews feed segments, segments feed cross-segment results.
package dataset

import "sort"

// Question is one interview question. ID is its identity; the order of the
// owning slice defines column order in every derived report.
type Question struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	ColumnIndex int    `json:"column_index"`
}

// Interview is one processed respondent. Segments is a deduplicated, sorted
// slice treated as a set; Answers omits questions with no recorded answer.
type Interview struct {
	Name     string            `json:"name"`
	Segments []string          `json:"segments"`
	Answers  map[string]string `json:"answers"`
}

// InterviewDataset is the typed form of the transcript analysis report.
type InterviewDataset struct {
	Questions  []Question  `json:"questions"`
	Interviews []Interview `json:"interviews"`
	SegmentSet []string    `json:"segment_set"`
}

// NewInterviewDataset builds a dataset and computes its segment set.
func NewInterviewDataset(questions []Question, interviews []Interview) *InterviewDataset {
	ds := &InterviewDataset{Questions: questions, Interviews: interviews}
	ds.ComputeSegmentSet()
	return ds
}

// ComputeSegmentSet recomputes SegmentSet as the union of all interview
// segments. It must be called again whenever Interviews changes.
func (ds *InterviewDataset) ComputeSegmentSet() {
	seen := make(map[string]bool)
	for _, iv := range ds.Interviews {
		for _, s := range iv.Segments {
			seen[s] = true
		}
	}
	set := make([]string, 0, len(seen))
	for s := range seen {
		set = append(set, s)
	}
	sort.Strings(set)
	ds.SegmentSet = set
}

// SegmentAnswer accumulates the evidence and eventual synthesis for one
// (segment, question) pair. AnswerSummary holds the latest raw answer until
// the summarizer assigns a real synthesis; SummaryConfidence stays unset
// until then.
type SegmentAnswer struct {
	SegmentName       string     `json:"segment_name"`
	QuestionID        string     `json:"question_id"`
	AnswerSummary     string     `json:"answer_summary"`
	RoughAnswers      []string   `json:"rough_answers"`
	SummaryConfidence Confidence `json:"summary_confidence"`
}

// Summarized reports whether the summarizer has replaced the provisional
// raw-answer summary with a real synthesis.
func (a *SegmentAnswer) Summarized() bool {
	return a.SummaryConfidence != ConfidenceUnset
}

// SegmentDataset groups SegmentAnswers by segment name, then question ID.
// A segment need not have an answer for every question.
type SegmentDataset struct {
	Questions []Question                           `json:"questions"`
	Segments  map[string]map[string]*SegmentAnswer `json:"segments"`
}

// SegmentNames returns the segment names in sorted order, so callers iterate
// deterministically.
func (ds *SegmentDataset) SegmentNames() []string {
	names := make([]string, 0, len(ds.Segments))
	for name := range ds.Segments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QuestionText returns the text of the question with the given ID.
func (ds *SegmentDataset) QuestionText(id string) string {
	for _, q := range ds.Questions {
		if q.ID == id {
			return q.Text
		}
	}
	return ""
}

// ResultAnalysis is one cross-segment synthesis for one question. Quotes is
// populated only by the quote enricher.
type ResultAnalysis struct {
	QuestionID   string     `json:"question_id"`
	QuestionText string     `json:"question_text"`
	Analysis     string     `json:"analysis"`
	Quotes       string     `json:"quotes"`
	Confidence   Confidence `json:"confidence"`
}
