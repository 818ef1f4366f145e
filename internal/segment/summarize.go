package segment

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nagoli/user-research-helper/internal/config"
	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/llm"
)

const synthesisPrompt = `You are a researcher analyzing user responses to the usage of a product.

The analysis was done in %s and the context is:
%s

Here is one particular question of the interview you are going to work with:
%s

Here are all the different answers to this question from users in the "%s" segment:
%s

Please provide a concise and precise synthesis of these answers in %s, highlighting:
1. Common themes and patterns, tendencies and frequencies
2. Notable unique perspectives
3. Key insights

Here is more context for your synthesis:
%s

Be sure that you do not invent anything by checking that all the elements of your synthesis are in the provided answers, and that they relate to the question.

You must always respond with ONLY this JSON:
{
    "analysis": "your concise and precise synthesis of the answers in %s",
    "confidence": "low" or "medium" or "high"
}`

// Result holds the results of a summarization run.
type Result struct {
	Summarized int
	Reloaded   int
	Errors     int
}

// Summarizer synthesizes each segment's accumulated answers, one
// (segment, question) unit at a time, checkpointing after every unit. A
// segment whose checkpoint file already exists is reloaded wholesale and
// never recomputed: file existence is the completion signal, so resuming a
// partially written segment redoes none of it. That coarseness is a
// deliberate trade-off, not a bug.
type Summarizer struct {
	cfg      *config.Config
	ws       *config.Workspace
	provider llm.Provider
}

// NewSummarizer creates a segment summarizer.
func NewSummarizer(cfg *config.Config, ws *config.Workspace, provider llm.Provider) *Summarizer {
	return &Summarizer{cfg: cfg, ws: ws, provider: provider}
}

// SummarizeSegments processes every segment in the dataset in sorted name
// order, questions in dataset order, mutating the dataset's SegmentAnswers
// in place.
func (s *Summarizer) SummarizeSegments(ctx context.Context, ds *dataset.SegmentDataset) *Result {
	if s.provider == nil {
		log.Println("No LLM provider available for segment summaries")
		return &Result{Errors: 1}
	}

	r := &Result{}
	for _, segmentName := range ds.SegmentNames() {
		checkpointPath := s.ws.SegmentCheckpoint(segmentName)

		if _, err := os.Stat(checkpointPath); err == nil {
			answers, err := LoadCheckpoint(checkpointPath)
			if err != nil {
				log.Printf("Error reloading segment %q: %v", segmentName, err)
				r.Errors++
				continue
			}
			ds.Segments[segmentName] = answers
			r.Reloaded++
			if s.cfg.Debug.Verbose {
				log.Printf("Segment %q already analyzed, reloaded from %s", segmentName, checkpointPath)
			}
			continue
		}

		answers := ds.Segments[segmentName]
		for _, q := range ds.Questions {
			answer, ok := answers[q.ID]
			if !ok {
				continue
			}
			s.synthesize(ctx, answer, q.Text)
			if err := SaveCheckpoint(checkpointPath, segmentName, answers); err != nil {
				log.Printf("Error checkpointing segment %q: %v", segmentName, err)
				r.Errors++
			}
		}
		r.Summarized++
		if s.cfg.Debug.Verbose {
			log.Printf("Segment %q analyzed and saved to %s", segmentName, checkpointPath)
		}
	}

	log.Printf("Segment summaries complete: %d summarized, %d reloaded, %d errors",
		r.Summarized, r.Reloaded, r.Errors)
	return r
}

// synthesize runs one external synthesis call and records its outcome on
// the answer. A failed call records an error summary with low confidence
// and processing continues.
func (s *Summarizer) synthesize(ctx context.Context, answer *dataset.SegmentAnswer, questionText string) {
	prompt := fmt.Sprintf(synthesisPrompt,
		s.cfg.Language,
		s.cfg.Context.Common,
		questionText,
		answer.SegmentName,
		formatAnswers(answer.RoughAnswers),
		s.cfg.Language,
		s.cfg.Context.AnswerAnalysis,
		s.cfg.Language,
	)

	responseText, err := s.provider.Generate(ctx, prompt, s.cfg.LLM.MaxTokens)
	if err != nil {
		log.Printf("Error generating synthesis for segment %q question %s: %v",
			answer.SegmentName, answer.QuestionID, err)
		answer.AnswerSummary = fmt.Sprintf("Error generating synthesis: %v", err)
		answer.SummaryConfidence = dataset.ConfidenceLow
		return
	}

	parsed := llm.ParseJSONResponse(responseText)
	if parsed == nil {
		answer.AnswerSummary = "Error generating synthesis: malformed response"
		answer.SummaryConfidence = dataset.ConfidenceLow
		return
	}

	analysis, _ := parsed["analysis"].(string)
	confidence, _ := parsed["confidence"].(string)
	answer.AnswerSummary = analysis
	answer.SummaryConfidence = dataset.ParseConfidence(confidence)
}

func formatAnswers(answers []string) string {
	var lines []string
	for _, a := range answers {
		lines = append(lines, "- "+a)
	}
	return strings.Join(lines, "\n")
}
