package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nagoli/user-research-helper/internal/dataset"
)

func TestWriteResultsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.docx")
	analyses := []dataset.ResultAnalysis{
		{QuestionID: "2", QuestionText: "Overall experience?", Analysis: "positive", Quotes: "love it (power_users)"},
		{QuestionID: "3", QuestionText: "Getting started?", Analysis: "mixed"},
	}

	if err := WriteResultsDocument(analyses, path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("document file is empty")
	}
}
