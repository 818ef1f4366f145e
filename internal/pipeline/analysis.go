package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/report"
	"github.com/nagoli/user-research-helper/internal/results"
	"github.com/nagoli/user-research-helper/internal/segment"
)

// RunAnalysis executes the analysis phase: segment summaries, cross-segment
// result analysis, quote enrichment. Each step is gated by its config
// toggle and consumes only rendered artifacts, so the steps can run in
// separate passes or on separate machines.
func (p *Pipeline) RunAnalysis(ctx context.Context) *Result {
	r := &Result{}

	if p.cfg.Steps.SegmentSummaries {
		step := p.runSegmentSummaries(ctx)
		r.Steps = append(r.Steps, step)
		if step.Err != nil {
			return r
		}
	}

	if p.cfg.Steps.ResultAnalysis {
		step := p.runResultAnalysis(ctx)
		r.Steps = append(r.Steps, step)
		if step.Err != nil {
			return r
		}
	}

	if p.cfg.Steps.AddQuotes {
		r.Steps = append(r.Steps, p.runAddQuotes())
	}

	return r
}

// runSegmentSummaries aggregates the transcript report by segment and
// drives the checkpointed summarizer, then renders the segment report.
func (p *Pipeline) runSegmentSummaries(ctx context.Context) StepResult {
	log.Println("Step: summarizing answers by segment...")

	if err := os.MkdirAll(p.ws.SegmentAnalysisDir(), 0o755); err != nil {
		return StepResult{Name: "Segments", Err: fmt.Errorf("creating segment directory: %w", err)}
	}

	ivds, err := report.ParseTranscriptReport(p.ws.AnalysisTranscriptReport())
	if err != nil {
		return StepResult{Name: "Segments", Err: err}
	}
	if err := writeJSON(p.ws.InterviewDatasetFile(), ivds); err != nil {
		return StepResult{Name: "Segments", Err: err}
	}

	sds := dataset.BuildSegmentDataset(ivds)
	if err := writeJSON(p.ws.SegmentDatasetFile(), sds); err != nil {
		return StepResult{Name: "Segments", Err: err}
	}

	summarizer := segment.NewSummarizer(p.cfg, p.ws, p.provider)
	result := summarizer.SummarizeSegments(ctx, sds)

	if err := report.WriteSegmentReport(sds, p.ws.SegmentReport()); err != nil {
		return StepResult{Name: "Segments", Err: err}
	}

	return StepResult{
		Name: "Segments",
		Summary: fmt.Sprintf("%d segments summarized, %d reloaded from checkpoints, report saved to %s",
			result.Summarized, result.Reloaded, p.ws.SegmentReport()),
	}
}

// runResultAnalysis reloads the rendered segment report and synthesizes
// one cross-segment result per question.
func (p *Pipeline) runResultAnalysis(ctx context.Context) StepResult {
	log.Println("Step: synthesizing results across segments...")

	sds, err := report.ParseSegmentReport(p.ws.SegmentReport())
	if err != nil {
		return StepResult{Name: "Results", Err: err}
	}

	synthesizer := results.NewSynthesizer(p.cfg, p.provider)
	analyses, result := synthesizer.AnalyzeQuestions(ctx, sds, p.ws.ResultsFile())
	if result.Analyzed == 0 && result.Errors > 0 {
		return StepResult{Name: "Results", Err: fmt.Errorf("result analysis produced nothing")}
	}

	if err := report.WriteResultReport(analyses, p.ws.ResultReport()); err != nil {
		return StepResult{Name: "Results", Err: err}
	}

	return StepResult{
		Name: "Results",
		Summary: fmt.Sprintf("%d questions analyzed, results saved to %s",
			result.Analyzed, p.ws.ResultsFile()),
	}
}

// runAddQuotes attaches quotes from the quote workbook to the persisted
// results and renders the final document.
func (p *Pipeline) runAddQuotes() StepResult {
	log.Println("Step: adding quotes to results...")

	analyses, err := results.LoadResults(p.ws.ResultsFile())
	if err != nil {
		return StepResult{Name: "Quotes", Err: err}
	}

	quoteFile := p.ws.QuoteReport(p.ws.AnalysisTranscriptReport())
	rows, err := report.ParseQuoteRows(quoteFile)
	if err != nil {
		return StepResult{Name: "Quotes", Err: err}
	}

	analyses = results.AddQuotes(analyses, rows)

	if err := results.SaveResults(p.ws.ResultsWithQuotesFile(), analyses); err != nil {
		return StepResult{Name: "Quotes", Err: err}
	}
	if err := report.WriteResultsDocument(analyses, p.ws.ResultsDocument()); err != nil {
		return StepResult{Name: "Quotes", Err: err}
	}

	return StepResult{
		Name: "Quotes",
		Summary: fmt.Sprintf("quotes added for %d questions, document saved to %s",
			len(analyses), p.ws.ResultsDocument()),
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
