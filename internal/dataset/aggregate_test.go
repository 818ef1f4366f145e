package dataset

import (
	"reflect"
	"testing"
)

func testInterviewDataset() *InterviewDataset {
	questions := []Question{
		{ID: "Q0", Text: "Overall experience?", ColumnIndex: 2},
		{ID: "Q1", Text: "Getting started?", ColumnIndex: 3},
	}
	interviews := []Interview{
		{Name: "alice", Segments: []string{"power_users"}, Answers: map[string]string{
			"Q0": "Great tool", "Q1": "Easy",
		}},
		{Name: "bob", Segments: []string{"new_users", "power_users"}, Answers: map[string]string{
			"Q0": "Confusing at first",
		}},
		{Name: "carol", Segments: []string{"new_users"}, Answers: map[string]string{
			"Q1": "Took a while",
		}},
	}
	return NewInterviewDataset(questions, interviews)
}

func TestBuildSegmentDataset(t *testing.T) {
	sds := BuildSegmentDataset(testInterviewDataset())

	if len(sds.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(sds.Segments))
	}

	power := sds.Segments["power_users"]
	if power == nil {
		t.Fatal("missing power_users segment")
	}
	q0 := power["Q0"]
	if q0 == nil {
		t.Fatal("missing power_users Q0")
	}
	wantRough := []string{"Great tool", "Confusing at first"}
	if !reflect.DeepEqual(q0.RoughAnswers, wantRough) {
		t.Errorf("expected rough answers %v, got %v", wantRough, q0.RoughAnswers)
	}
	if q0.AnswerSummary != "Confusing at first" {
		t.Errorf("provisional summary should be the latest answer, got %q", q0.AnswerSummary)
	}
	if q0.Summarized() {
		t.Error("provisional answer must not count as summarized")
	}

	newUsers := sds.Segments["new_users"]
	if newUsers["Q0"] == nil || len(newUsers["Q0"].RoughAnswers) != 1 {
		t.Errorf("expected 1 rough answer for new_users Q0, got %v", newUsers["Q0"])
	}
	if newUsers["Q1"] == nil || newUsers["Q1"].RoughAnswers[0] != "Took a while" {
		t.Errorf("unexpected new_users Q1: %v", newUsers["Q1"])
	}

	if power["Q1"] == nil || power["Q1"].AnswerSummary != "Easy" {
		t.Errorf("unexpected power_users Q1: %v", power["Q1"])
	}
}

func TestBuildSegmentDatasetSkipsEmptyAnswers(t *testing.T) {
	ivds := NewInterviewDataset(
		[]Question{{ID: "Q0", Text: "x", ColumnIndex: 2}},
		[]Interview{{Name: "alice", Segments: []string{"s"}, Answers: map[string]string{"Q0": ""}}},
	)
	sds := BuildSegmentDataset(ivds)
	if len(sds.Segments["s"]) != 0 {
		t.Errorf("empty answers must not create segment answers, got %v", sds.Segments["s"])
	}
}

func TestBuildSegmentDatasetDeterministic(t *testing.T) {
	ivds := testInterviewDataset()
	first := BuildSegmentDataset(ivds)
	second := BuildSegmentDataset(ivds)

	if !reflect.DeepEqual(first, second) {
		t.Error("two folds of the same dataset should be identical")
	}
}
