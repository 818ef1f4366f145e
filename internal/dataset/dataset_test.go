package dataset

import (
	"reflect"
	"testing"
)

func TestComputeSegmentSet(t *testing.T) {
	ds := NewInterviewDataset(nil, []Interview{
		{Name: "alice", Segments: []string{"power_users"}},
		{Name: "bob", Segments: []string{"new_users", "power_users"}},
		{Name: "carol", Segments: []string{"new_users"}},
	})

	want := []string{"new_users", "power_users"}
	if !reflect.DeepEqual(ds.SegmentSet, want) {
		t.Errorf("expected segment set %v, got %v", want, ds.SegmentSet)
	}
}

func TestComputeSegmentSetEmpty(t *testing.T) {
	ds := NewInterviewDataset(nil, []Interview{
		{Name: "alice"},
	})
	if len(ds.SegmentSet) != 0 {
		t.Errorf("expected empty segment set, got %v", ds.SegmentSet)
	}
}

func TestComputeSegmentSetRecompute(t *testing.T) {
	ds := NewInterviewDataset(nil, []Interview{
		{Name: "alice", Segments: []string{"power_users"}},
	})
	ds.Interviews = append(ds.Interviews, Interview{Name: "bob", Segments: []string{"admins"}})
	ds.ComputeSegmentSet()

	want := []string{"admins", "power_users"}
	if !reflect.DeepEqual(ds.SegmentSet, want) {
		t.Errorf("expected segment set %v, got %v", want, ds.SegmentSet)
	}
}

func TestSegmentNamesSorted(t *testing.T) {
	ds := &SegmentDataset{Segments: map[string]map[string]*SegmentAnswer{
		"zeta":  {},
		"alpha": {},
		"mid":   {},
	}}
	want := []string{"alpha", "mid", "zeta"}
	if got := ds.SegmentNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestQuestionText(t *testing.T) {
	ds := &SegmentDataset{Questions: []Question{
		{ID: "3", Text: "How was onboarding?"},
	}}
	if got := ds.QuestionText("3"); got != "How was onboarding?" {
		t.Errorf("unexpected text: %q", got)
	}
	if got := ds.QuestionText("99"); got != "" {
		t.Errorf("expected empty text for unknown ID, got %q", got)
	}
}

func TestSummarized(t *testing.T) {
	a := &SegmentAnswer{AnswerSummary: "raw answer"}
	if a.Summarized() {
		t.Error("answer without confidence should not be summarized")
	}
	a.SummaryConfidence = ConfidenceHigh
	if !a.Summarized() {
		t.Error("answer with confidence should be summarized")
	}
}
