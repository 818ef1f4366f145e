// Package results produces the per-question cross-segment syntheses and
// enriches them with representative quotes.
package results

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nagoli/user-research-helper/internal/config"
	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/llm"
)

const resultPrompt = `You are analyzing user research responses. You need to synthesize summaries from different user segments for a specific question.

The analysis was done in %s and the context is:
%s

Question:
%s

Segment Summaries:
%s

Please provide a concise and precise synthesis of these summaries in %s that:
1. Identifies common patterns across segments
2. Highlights key differences between segments
3. Draws meaningful conclusions about the overall user experience

Here is more context for your synthesis:
%s

Be precise and factual. Only include information that is supported by the summaries, and check that every element of your synthesis relates to the given question.

You must always respond with ONLY this JSON:
{
    "analysis": "your concise and precise synthesis of the summaries in %s",
    "confidence": "low" or "medium" or "high"
}`

// Result holds the results of a cross-segment analysis run.
type Result struct {
	Analyzed int
	Errors   int
}

// Synthesizer produces one ResultAnalysis per question from the segment
// summaries that exist for it.
type Synthesizer struct {
	cfg      *config.Config
	provider llm.Provider
}

// NewSynthesizer creates a result synthesizer.
func NewSynthesizer(cfg *config.Config, provider llm.Provider) *Synthesizer {
	return &Synthesizer{cfg: cfg, provider: provider}
}

// AnalyzeQuestions synthesizes every question in dataset order. The
// accumulated list is rewritten to resultsPath after every question, so a
// crash preserves all completed questions.
func (s *Synthesizer) AnalyzeQuestions(ctx context.Context, ds *dataset.SegmentDataset, resultsPath string) ([]dataset.ResultAnalysis, *Result) {
	if s.provider == nil {
		log.Println("No LLM provider available for result analysis")
		return nil, &Result{Errors: 1}
	}

	r := &Result{}
	var analyses []dataset.ResultAnalysis
	for _, q := range ds.Questions {
		analysis := s.analyzeQuestion(ctx, ds, q)
		analyses = append(analyses, analysis)
		r.Analyzed++
		if analysis.Confidence == dataset.ConfidenceLow && strings.HasPrefix(analysis.Analysis, "Error generating synthesis") {
			r.Errors++
		}
		if resultsPath != "" {
			if err := SaveResults(resultsPath, analyses); err != nil {
				log.Printf("Error persisting results: %v", err)
				r.Errors++
			}
		}
	}

	log.Printf("Result analysis complete: %d questions analyzed, %d errors", r.Analyzed, r.Errors)
	return analyses, r
}

// analyzeQuestion collects every segment's non-empty summary for the
// question and runs one cross-segment synthesis. Segments missing the
// question are silently excluded; a question with no summaries still gets
// a synthesis call, whose empty input the provider must tolerate.
func (s *Synthesizer) analyzeQuestion(ctx context.Context, ds *dataset.SegmentDataset, q dataset.Question) dataset.ResultAnalysis {
	var summaryLines []string
	for _, segmentName := range ds.SegmentNames() {
		answer, ok := ds.Segments[segmentName][q.ID]
		if !ok || answer.AnswerSummary == "" {
			continue
		}
		summaryLines = append(summaryLines, fmt.Sprintf("- %s: %s", segmentName, answer.AnswerSummary))
	}

	if s.cfg.Debug.PrintAnalysis {
		log.Printf("Segment summaries for question %s:\n%s", q.ID, strings.Join(summaryLines, "\n"))
	}

	analysis := dataset.ResultAnalysis{QuestionID: q.ID, QuestionText: q.Text}

	prompt := fmt.Sprintf(resultPrompt,
		s.cfg.Language,
		s.cfg.Context.Common,
		q.Text,
		strings.Join(summaryLines, "\n"),
		s.cfg.Language,
		s.cfg.Context.ResultAnalysis,
		s.cfg.Language,
	)

	responseText, err := s.provider.Generate(ctx, prompt, s.cfg.LLM.MaxTokens)
	if err != nil {
		log.Printf("Error generating synthesis for question %s: %v", q.ID, err)
		analysis.Analysis = fmt.Sprintf("Error generating synthesis: %v", err)
		analysis.Confidence = dataset.ConfidenceLow
		return analysis
	}

	parsed := llm.ParseJSONResponse(responseText)
	if parsed == nil {
		analysis.Analysis = "Error generating synthesis: malformed response"
		analysis.Confidence = dataset.ConfidenceLow
		return analysis
	}

	text, _ := parsed["analysis"].(string)
	confidence, _ := parsed["confidence"].(string)
	analysis.Analysis = text
	analysis.Confidence = dataset.ParseConfidence(confidence)
	return analysis
}
