package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the campaign root directory and the file layout underneath
// it. All checkpoint and report files live inside the workspace.
type Workspace struct {
	Root string
}

// NewWorkspace validates the root directory and returns a Workspace.
// A missing root is a configuration error and aborts the run.
func NewWorkspace(root string) (*Workspace, error) {
	if root == "" {
		return nil, fmt.Errorf("campaign root directory must not be empty")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("campaign root directory not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("campaign root is not a directory: %s", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving campaign root: %w", err)
	}
	return &Workspace{Root: abs}, nil
}

func (w *Workspace) ConfigFile() string { return filepath.Join(w.Root, "config.yaml") }

func (w *Workspace) QuestionFile() string { return filepath.Join(w.Root, "questions.txt") }

func (w *Workspace) AudioDir() string { return filepath.Join(w.Root, "audios") }
func (w *Workspace) RawTranscriptDir() string {
	return filepath.Join(w.Root, "transcripts", "raw")
}

func (w *Workspace) StructuredTranscriptDir() string {
	return filepath.Join(w.Root, "transcripts", "structured")
}

func (w *Workspace) TranscriptReportDir() string { return filepath.Join(w.Root, "transcripts") }

func (w *Workspace) AnalysisDir() string { return filepath.Join(w.Root, "analysis") }

func (w *Workspace) SegmentAnalysisDir() string {
	return filepath.Join(w.Root, "analysis", "segments")
}

// TranscriptReport is the rendered per-interview answer table.
func (w *Workspace) TranscriptReport() string {
	return filepath.Join(w.TranscriptReportDir(), "transcript_analysis_report.xlsx")
}

// AnalysisTranscriptReport is the copy of the transcript report consumed by
// the analysis phase, decoupling the two phases.
func (w *Workspace) AnalysisTranscriptReport() string {
	return filepath.Join(w.AnalysisDir(), "transcript_analysis_report.xlsx")
}

// QuoteReport is the quotes workbook rendered next to the transcript report.
func (w *Workspace) QuoteReport(reportPath string) string {
	return quoteSibling(reportPath)
}

// SegmentReport is the rendered per-segment summary table.
func (w *Workspace) SegmentReport() string {
	return filepath.Join(w.SegmentAnalysisDir(), "segment_analysis_report.xlsx")
}

// SegmentCheckpoint is the per-segment JSON checkpoint file. Its existence
// marks the segment as fully summarized.
func (w *Workspace) SegmentCheckpoint(segmentName string) string {
	return filepath.Join(w.SegmentAnalysisDir(), segmentName+".json")
}

func (w *Workspace) InterviewDatasetFile() string {
	return filepath.Join(w.SegmentAnalysisDir(), "interview_dataset.json")
}

func (w *Workspace) SegmentDatasetFile() string {
	return filepath.Join(w.SegmentAnalysisDir(), "segment_dataset.json")
}

func (w *Workspace) ResultsFile() string {
	return filepath.Join(w.AnalysisDir(), "results.json")
}

func (w *Workspace) ResultReport() string {
	return filepath.Join(w.AnalysisDir(), "result_report.xlsx")
}

func (w *Workspace) ResultsWithQuotesFile() string {
	return filepath.Join(w.AnalysisDir(), "results_with_quotes.json")
}

func (w *Workspace) ResultsDocument() string {
	return filepath.Join(w.AnalysisDir(), "results_with_quotes.docx")
}

// LoadConfig loads the workspace's config document. A missing or invalid
// document is a configuration error.
func (w *Workspace) LoadConfig() (*Config, error) {
	return Load(w.ConfigFile())
}

func quoteSibling(reportPath string) string {
	ext := filepath.Ext(reportPath)
	return reportPath[:len(reportPath)-len(ext)] + "_quotes" + ext
}
