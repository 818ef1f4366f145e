package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nagoli/user-research-helper/internal/config"
	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/llm"
)

const extractionPrompt = `You are a user research specialist analyzing a user interview. Here is the transcript of the interview:
%s

Keywords that are important and might be misspelled in the transcript: %s

Analyze the transcript to find the answer the interviewed person gave to this question, asked in %s:
Question: %s

Extract the relevant information that answers this question. Do not invent anything: check that the answer was given by the person who is interviewed, and that the extracted information is in the transcript. Summarize the answer to keep the important insights for this question. The answer must be in %s.

Take into account the following context instructions:
%s
%s

You must respond with ONLY this JSON:
{
    "found": true or false,
    "answer": "the extracted answer in %s, or an empty string if not found",
    "confidence": "low" or "medium" or "high",
    "quote": "a very representative and compact quote (few words) if one exists, otherwise an empty string"
}`

// AnswerExtraction is the extraction outcome for one question.
type AnswerExtraction struct {
	Found      bool               `json:"found"`
	Answer     string             `json:"answer"`
	Confidence dataset.Confidence `json:"confidence"`
	Quote      string             `json:"quote"`
}

// StructuredAnswer pairs a question with its extraction, as persisted in
// the structured transcript file.
type StructuredAnswer struct {
	Question string           `json:"question"`
	Analysis AnswerExtraction `json:"analysis"`
}

// Analyzer extracts per-question answers from one interview transcript.
type Analyzer struct {
	provider   llm.Provider
	cfg        *config.Config
	transcript string
}

// NewAnalyzer creates an analyzer for one transcript.
func NewAnalyzer(provider llm.Provider, cfg *config.Config, transcript string) *Analyzer {
	return &Analyzer{provider: provider, cfg: cfg, transcript: transcript}
}

// AnalyzeQuestion asks the LLM for the answer to one question. Failures
// degrade to a not-found extraction carrying the error message, never an
// error return.
func (a *Analyzer) AnalyzeQuestion(ctx context.Context, questionText string) AnswerExtraction {
	prompt := fmt.Sprintf(extractionPrompt,
		a.transcript,
		strings.Join(a.cfg.WordBoost, ", "),
		a.cfg.Language,
		questionText,
		a.cfg.Language,
		a.cfg.Context.Common,
		a.cfg.Context.AnswerExtraction,
		a.cfg.Language,
	)

	responseText, err := a.provider.Generate(ctx, prompt, a.cfg.LLM.MaxTokens)
	if err != nil {
		return AnswerExtraction{
			Answer:     fmt.Sprintf("API Error: %v", err),
			Confidence: dataset.ConfidenceLow,
		}
	}

	parsed := llm.ParseJSONResponse(responseText)
	if parsed == nil {
		return AnswerExtraction{
			Answer:     "Error parsing JSON response",
			Confidence: dataset.ConfidenceLow,
		}
	}

	found, _ := parsed["found"].(bool)
	answer, _ := parsed["answer"].(string)
	confidence, _ := parsed["confidence"].(string)
	quote, _ := parsed["quote"].(string)

	return AnswerExtraction{
		Found:      found,
		Answer:     answer,
		Confidence: dataset.ParseConfidence(confidence),
		Quote:      quote,
	}
}

// AnalyzeTranscript extracts answers for every question from a raw
// transcript file, persisting the structured results after every question
// so a crash loses at most one unit of work.
func AnalyzeTranscript(ctx context.Context, provider llm.Provider, cfg *config.Config, transcriptPath string, questions []dataset.Question, outputPath string) (map[string]StructuredAnswer, error) {
	raw, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	analyzer := NewAnalyzer(provider, cfg, string(raw))
	results := make(map[string]StructuredAnswer, len(questions))

	for _, q := range questions {
		results[q.ID] = StructuredAnswer{
			Question: q.Text,
			Analysis: analyzer.AnalyzeQuestion(ctx, q.Text),
		}
		if err := writeStructured(outputPath, results); err != nil {
			return nil, err
		}
	}

	return results, nil
}

// LoadStructured reads a structured transcript file.
func LoadStructured(path string) (map[string]StructuredAnswer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading structured transcript: %w", err)
	}
	var results map[string]StructuredAnswer
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing structured transcript: %w", err)
	}
	return results, nil
}

func writeStructured(path string, results map[string]StructuredAnswer) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling structured transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing structured transcript: %w", err)
	}
	return nil
}
