package report

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/transcript"
)

func testQuestions() []dataset.Question {
	return []dataset.Question{
		{ID: "Q0", Text: "Overall experience?", ColumnIndex: 2},
		{ID: "Q1", Text: "Getting started?", ColumnIndex: 3},
	}
}

func testInterviews() []InterviewAnswers {
	return []InterviewAnswers{
		{
			Name: "alice",
			Answers: map[string]transcript.StructuredAnswer{
				"Q0": {Question: "Overall experience?", Analysis: transcript.AnswerExtraction{
					Found: true, Answer: "Great tool", Confidence: dataset.ConfidenceHigh, Quote: "love it",
				}},
				"Q1": {Question: "Getting started?", Analysis: transcript.AnswerExtraction{
					Found: false,
				}},
			},
		},
		{
			Name: "bob",
			Answers: map[string]transcript.StructuredAnswer{
				"Q1": {Question: "Getting started?", Analysis: transcript.AnswerExtraction{
					Found: true, Answer: "Confusing setup", Confidence: dataset.ConfidenceLow,
				}},
			},
		},
	}
}

// setSegmentTags fills in the Features column the way the operator does
// between the two phases.
func setSegmentTags(t *testing.T, path string, tagsByRow map[int]string) {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	for row, tags := range tagsByRow {
		f.SetCellValue(f.GetSheetName(0), cellName(2, row), tags)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}
}

func TestTranscriptReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.xlsx")
	quotePath := filepath.Join(dir, "report_quotes.xlsx")

	if err := WriteTranscriptReport(testQuestions(), testInterviews(), reportPath, quotePath); err != nil {
		t.Fatal(err)
	}
	setSegmentTags(t, reportPath, map[int]string{2: "power_users", 3: "new_users, new_users"})

	ds, err := ParseTranscriptReport(reportPath)
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(ds.Questions))
	}
	if ds.Questions[0].ID != "3" || ds.Questions[1].ID != "4" {
		t.Errorf("unexpected question IDs: %s %s", ds.Questions[0].ID, ds.Questions[1].ID)
	}
	if ds.Questions[0].Text != "Overall experience?" {
		t.Errorf("unexpected question text: %q", ds.Questions[0].Text)
	}

	if len(ds.Interviews) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(ds.Interviews))
	}
	alice := ds.Interviews[0]
	if alice.Name != "alice" {
		t.Errorf("unexpected name: %q", alice.Name)
	}
	if !reflect.DeepEqual(alice.Segments, []string{"power_users"}) {
		t.Errorf("unexpected segments: %v", alice.Segments)
	}
	if alice.Answers["3"] != "Great tool" {
		t.Errorf("unexpected answer: %q", alice.Answers["3"])
	}
	if _, ok := alice.Answers["4"]; ok {
		t.Error("not-found answers must not appear in the parsed dataset")
	}

	bob := ds.Interviews[1]
	if !reflect.DeepEqual(bob.Segments, []string{"new_users"}) {
		t.Errorf("duplicate tags not deduplicated: %v", bob.Segments)
	}
	if bob.Answers["4"] != "Confusing setup" {
		t.Errorf("unexpected answer: %q", bob.Answers["4"])
	}

	if !reflect.DeepEqual(ds.SegmentSet, []string{"new_users", "power_users"}) {
		t.Errorf("unexpected segment set: %v", ds.SegmentSet)
	}
}

func TestParseQuoteRows(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.xlsx")
	quotePath := filepath.Join(dir, "report_quotes.xlsx")

	if err := WriteTranscriptReport(testQuestions(), testInterviews(), reportPath, quotePath); err != nil {
		t.Fatal(err)
	}
	setSegmentTags(t, quotePath, map[int]string{2: "power_users"})

	rows, err := ParseQuoteRows(quotePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}
	if cellAt(rows[0], 0) != "alice" || cellAt(rows[0], 2) != "love it" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if cellAt(rows[1], 2) != "" {
		t.Errorf("answer without quote must leave the cell empty, got %q", cellAt(rows[1], 2))
	}
}

func TestSegmentReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.xlsx")
	ds := &dataset.SegmentDataset{
		Questions: []dataset.Question{
			{ID: "3", Text: "Overall experience?"},
			{ID: "4", Text: "Getting started?"},
		},
		Segments: map[string]map[string]*dataset.SegmentAnswer{
			"power_users": {
				"3": {SegmentName: "power_users", QuestionID: "3", AnswerSummary: "Fast and reliable", SummaryConfidence: dataset.ConfidenceHigh},
			},
			"new_users": {
				"3": {SegmentName: "new_users", QuestionID: "3", AnswerSummary: "Mixed feelings", SummaryConfidence: dataset.ConfidenceMedium},
				"4": {SegmentName: "new_users", QuestionID: "4", AnswerSummary: "Docs unclear", SummaryConfidence: dataset.ConfidenceLow},
			},
		},
	}

	if err := WriteSegmentReport(ds, path); err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseSegmentReport(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(parsed.Questions) != 2 || parsed.Questions[0].ID != "2" || parsed.Questions[1].ID != "3" {
		t.Fatalf("unexpected parsed questions: %+v", parsed.Questions)
	}
	if len(parsed.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(parsed.Segments))
	}

	answer := parsed.Segments["new_users"]["2"]
	if answer == nil || answer.AnswerSummary != "Mixed feelings" {
		t.Errorf("summary text lost in round trip: %+v", answer)
	}
	// Confidence only survives as cell color, not as data.
	if answer.SummaryConfidence != dataset.ConfidenceUnset {
		t.Errorf("parsed confidence must be unset, got %q", answer.SummaryConfidence)
	}
	if parsed.Segments["power_users"]["3"] != nil {
		t.Error("missing answers must stay missing after the round trip")
	}
}

func TestWriteResultReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	analyses := []dataset.ResultAnalysis{
		{QuestionID: "2", QuestionText: "Overall experience?", Analysis: "positive", Confidence: dataset.ConfidenceHigh},
		{QuestionID: "3", QuestionText: "Getting started?", Analysis: "mixed", Confidence: dataset.ConfidenceLow},
	}

	if err := WriteResultReport(analyses, path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if cellAt(rows[0], 0) != "Question" || cellAt(rows[0], 1) != "Analysis" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if cellAt(rows[1], 0) != "Overall experience?" || cellAt(rows[1], 1) != "positive" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestSplitSegments(t *testing.T) {
	got := SplitSegments(" beta, alpha , beta ,, ")
	want := []string{"alpha", "beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := SplitSegments(""); len(got) != 0 {
		t.Errorf("expected no segments for empty tags, got %v", got)
	}
}
