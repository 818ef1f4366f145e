// Package report renders and parses the spreadsheet reports that connect
// the pipeline phases, and renders the final results document.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/transcript"
)

// Confidence fill colors, carried over from the original reports.
const (
	fillHigh   = "90EE90"
	fillMedium = "FFA500"
	fillLow    = "FF0000"
)

type reportStyles struct {
	wrap   int
	high   int
	medium int
	low    int
}

func newReportStyles(f *excelize.File) (*reportStyles, error) {
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	fill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		})
	}
	high, err := fill(fillHigh)
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	medium, err := fill(fillMedium)
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	low, err := fill(fillLow)
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	return &reportStyles{wrap: wrap, high: high, medium: medium, low: low}, nil
}

func (s *reportStyles) forConfidence(c dataset.Confidence) int {
	switch c {
	case dataset.ConfidenceHigh:
		return s.high
	case dataset.ConfidenceMedium:
		return s.medium
	case dataset.ConfidenceLow:
		return s.low
	default:
		return s.wrap
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// WriteTranscriptReport renders the structured transcripts as the
// per-interview answer table, plus a sibling quotes workbook. The Features
// column is left blank for the operator to fill in segment tags; the quotes
// workbook keeps the same column so its shape matches the quote table the
// enricher consumes.
func WriteTranscriptReport(questions []dataset.Question, interviews []InterviewAnswers, reportPath, quotePath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Analysis Results"
	f.SetSheetName("Sheet1", sheet)

	fq := excelize.NewFile()
	defer fq.Close()
	quoteSheet := "Quotes"
	fq.SetSheetName("Sheet1", quoteSheet)

	styles, err := newReportStyles(f)
	if err != nil {
		return err
	}
	quoteStyles, err := newReportStyles(fq)
	if err != nil {
		return err
	}

	for _, target := range []*excelize.File{f, fq} {
		name := sheet
		if target == fq {
			name = quoteSheet
		}
		target.SetCellValue(name, "A1", "File Name")
		target.SetCellValue(name, "B1", "Features")
		for i, q := range questions {
			target.SetCellValue(name, cellName(i+3, 1), q.Text)
		}
	}

	for rowIdx, interview := range interviews {
		row := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, row), interview.Name)
		fq.SetCellValue(quoteSheet, cellName(1, row), interview.Name)

		for i, q := range questions {
			answer, ok := interview.Answers[q.ID]
			if !ok || !answer.Analysis.Found {
				continue
			}
			col := i + 3
			cell := cellName(col, row)
			f.SetCellValue(sheet, cell, answer.Analysis.Answer)
			f.SetCellStyle(sheet, cell, cell, styles.forConfidence(answer.Analysis.Confidence))
			if answer.Analysis.Quote != "" {
				fq.SetCellValue(quoteSheet, cell, answer.Analysis.Quote)
				fq.SetCellStyle(quoteSheet, cell, cell, quoteStyles.wrap)
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(questions) + 2)
	for _, target := range []*excelize.File{f, fq} {
		name := sheet
		if target == fq {
			name = quoteSheet
		}
		target.SetColWidth(name, "A", "B", 30)
		if len(questions) > 0 {
			target.SetColWidth(name, "C", lastCol, 80)
		}
	}

	if err := f.SaveAs(reportPath); err != nil {
		return fmt.Errorf("saving transcript report: %w", err)
	}
	if err := fq.SaveAs(quotePath); err != nil {
		return fmt.Errorf("saving quote report: %w", err)
	}
	return nil
}

// InterviewAnswers is one interview's structured answers, keyed by
// question ID.
type InterviewAnswers struct {
	Name    string
	Answers map[string]transcript.StructuredAnswer
}

// ParseTranscriptReport loads the rendered transcript report into an
// InterviewDataset. Column 0 is the interview name, column 1 the
// comma-separated segment tags, columns from 2 one question each.
// Re-parsing the identical table always yields identical content.
func ParseTranscriptReport(path string) (*dataset.InterviewDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript report: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading transcript report: %w", err)
	}
	if len(rows) == 0 {
		return dataset.NewInterviewDataset(nil, nil), nil
	}

	header := rows[0]
	var questions []dataset.Question
	for i := 2; i < len(header); i++ {
		questions = append(questions, dataset.Question{
			ID:          strconv.Itoa(i + 1),
			Text:        header[i],
			ColumnIndex: i,
		})
	}

	var interviews []dataset.Interview
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(cellAt(row, 0)) == "" {
			continue
		}
		interview := dataset.Interview{
			Name:     cellAt(row, 0),
			Segments: SplitSegments(cellAt(row, 1)),
			Answers:  make(map[string]string),
		}
		for _, q := range questions {
			answer := strings.TrimSpace(cellAt(row, q.ColumnIndex))
			if answer != "" {
				interview.Answers[q.ID] = answer
			}
		}
		interviews = append(interviews, interview)
	}

	return dataset.NewInterviewDataset(questions, interviews), nil
}

// SplitSegments splits a comma-separated tag list into a deduplicated,
// sorted slice, dropping blank tags.
func SplitSegments(tags string) []string {
	seen := make(map[string]bool)
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			seen[tag] = true
		}
	}
	segments := make([]string, 0, len(seen))
	for tag := range seen {
		segments = append(segments, tag)
	}
	sort.Strings(segments)
	return segments
}

// WriteSegmentReport renders a SegmentDataset as the per-segment summary
// table: column 0 the segment name, one column per question in dataset
// order, cells colored by summary confidence.
func WriteSegmentReport(ds *dataset.SegmentDataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Segment Analysis Results"
	f.SetSheetName("Sheet1", sheet)

	styles, err := newReportStyles(f)
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Segment Name")
	for i, q := range ds.Questions {
		cell := cellName(i+2, 1)
		f.SetCellValue(sheet, cell, q.Text)
		f.SetCellStyle(sheet, cell, cell, styles.wrap)
	}

	for rowIdx, segmentName := range ds.SegmentNames() {
		row := rowIdx + 2
		f.SetCellValue(sheet, cellName(1, row), segmentName)
		answers := ds.Segments[segmentName]
		for i, q := range ds.Questions {
			answer, ok := answers[q.ID]
			if !ok {
				continue
			}
			cell := cellName(i+2, row)
			f.SetCellValue(sheet, cell, answer.AnswerSummary)
			f.SetCellStyle(sheet, cell, cell, styles.forConfidence(answer.SummaryConfidence))
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(ds.Questions) + 1)
	f.SetColWidth(sheet, "A", lastCol, 70)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving segment report: %w", err)
	}
	return nil
}

// ParseSegmentReport rebuilds a SegmentDataset from a rendered segment
// report. Question IDs become stringified column numbers offset by two, so
// they line up with the quote table's column-keyed IDs. Summary confidence
// is not recoverable from the report and stays unset.
func ParseSegmentReport(path string) (*dataset.SegmentDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening segment report: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading segment report: %w", err)
	}
	if len(rows) == 0 {
		return &dataset.SegmentDataset{Segments: map[string]map[string]*dataset.SegmentAnswer{}}, nil
	}

	header := rows[0]
	var questions []dataset.Question
	for i := 1; i < len(header); i++ {
		questions = append(questions, dataset.Question{
			ID:          strconv.Itoa(i + 1),
			Text:        header[i],
			ColumnIndex: i,
		})
	}

	segments := make(map[string]map[string]*dataset.SegmentAnswer)
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(cellAt(row, 0)) == "" {
			continue
		}
		segmentName := cellAt(row, 0)
		answers := make(map[string]*dataset.SegmentAnswer)
		for _, q := range questions {
			text := strings.TrimSpace(cellAt(row, q.ColumnIndex))
			if text == "" {
				continue
			}
			answers[q.ID] = &dataset.SegmentAnswer{
				SegmentName:   segmentName,
				QuestionID:    q.ID,
				AnswerSummary: text,
			}
		}
		segments[segmentName] = answers
	}

	return &dataset.SegmentDataset{Questions: questions, Segments: segments}, nil
}

// WriteResultReport renders the cross-segment analyses as a two-column
// table, analysis cells colored by confidence.
func WriteResultReport(results []dataset.ResultAnalysis, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Result Analysis"
	f.SetSheetName("Sheet1", sheet)

	styles, err := newReportStyles(f)
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Question")
	f.SetCellValue(sheet, "B1", "Analysis")

	for i, result := range results {
		row := i + 2
		qCell := cellName(1, row)
		f.SetCellValue(sheet, qCell, result.QuestionText)
		f.SetCellStyle(sheet, qCell, qCell, styles.wrap)

		aCell := cellName(2, row)
		f.SetCellValue(sheet, aCell, result.Analysis)
		switch result.Confidence {
		case dataset.ConfidenceMedium:
			f.SetCellStyle(sheet, aCell, aCell, styles.medium)
		case dataset.ConfidenceLow:
			f.SetCellStyle(sheet, aCell, aCell, styles.low)
		default:
			f.SetCellStyle(sheet, aCell, aCell, styles.wrap)
		}
	}

	f.SetColWidth(sheet, "A", "A", 70)
	f.SetColWidth(sheet, "B", "B", 100)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving result report: %w", err)
	}
	return nil
}

// ParseQuoteRows reads the quote table's data rows: column 0 the interview
// name, column 1 the comma-separated segment tags, columns from 2 one quote
// per question.
func ParseQuoteRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening quote report: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading quote report: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
