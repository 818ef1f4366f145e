package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nagoli/user-research-helper/internal/config"
	"github.com/nagoli/user-research-helper/internal/dataset"
)

type mockProvider struct {
	response string
	err      error
	calls    int
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) IsConfigured() bool { return true }

func testConfig() *config.Config {
	cfg := &config.Config{Language: "English"}
	cfg.LLM.MaxTokens = 1024
	return cfg
}

func TestAnalyzeQuestion(t *testing.T) {
	provider := &mockProvider{
		response: `{"found": true, "answer": "Uses it daily for reporting", "confidence": "high", "quote": "every single day"}`,
	}
	analyzer := NewAnalyzer(provider, testConfig(), "transcript text")

	extraction := analyzer.AnalyzeQuestion(context.Background(), "How often do you use it?")

	if !extraction.Found {
		t.Error("expected found")
	}
	if extraction.Answer != "Uses it daily for reporting" {
		t.Errorf("unexpected answer: %q", extraction.Answer)
	}
	if extraction.Confidence != dataset.ConfidenceHigh {
		t.Errorf("unexpected confidence: %q", extraction.Confidence)
	}
	if extraction.Quote != "every single day" {
		t.Errorf("unexpected quote: %q", extraction.Quote)
	}
}

func TestAnalyzeQuestionProviderError(t *testing.T) {
	provider := &mockProvider{err: fmt.Errorf("timeout")}
	analyzer := NewAnalyzer(provider, testConfig(), "transcript text")

	extraction := analyzer.AnalyzeQuestion(context.Background(), "q")

	if extraction.Found {
		t.Error("failed extraction must not be found")
	}
	if !strings.HasPrefix(extraction.Answer, "API Error:") {
		t.Errorf("unexpected answer: %q", extraction.Answer)
	}
	if extraction.Confidence != dataset.ConfidenceLow {
		t.Errorf("expected low confidence, got %q", extraction.Confidence)
	}
}

func TestAnalyzeQuestionMalformedResponse(t *testing.T) {
	provider := &mockProvider{response: "not json"}
	analyzer := NewAnalyzer(provider, testConfig(), "transcript text")

	extraction := analyzer.AnalyzeQuestion(context.Background(), "q")

	if extraction.Answer != "Error parsing JSON response" {
		t.Errorf("unexpected answer: %q", extraction.Answer)
	}
	if extraction.Confidence != dataset.ConfidenceLow {
		t.Errorf("expected low confidence, got %q", extraction.Confidence)
	}
}

func TestAnalyzeTranscript(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "alice_raw.txt")
	outputPath := filepath.Join(dir, "alice_structured.json")
	if err := os.WriteFile(transcriptPath, []byte("Speaker A: hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := &mockProvider{
		response: `{"found": true, "answer": "extracted", "confidence": "medium", "quote": ""}`,
	}
	questions := []dataset.Question{
		{ID: "Q0", Text: "First?"},
		{ID: "Q1", Text: "Second?"},
	}

	results, err := AnalyzeTranscript(context.Background(), provider, testConfig(), transcriptPath, questions, outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(results))
	}
	if provider.calls != 2 {
		t.Errorf("expected one call per question, got %d", provider.calls)
	}
	if results["Q0"].Question != "First?" || results["Q0"].Analysis.Answer != "extracted" {
		t.Errorf("unexpected result: %+v", results["Q0"])
	}

	loaded, err := LoadStructured(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 || loaded["Q1"].Analysis.Confidence != dataset.ConfidenceMedium {
		t.Errorf("unexpected persisted results: %+v", loaded)
	}
}

func TestAnalyzeTranscriptMissingFile(t *testing.T) {
	_, err := AnalyzeTranscript(context.Background(), &mockProvider{}, testConfig(),
		filepath.Join(t.TempDir(), "nope.txt"), nil, filepath.Join(t.TempDir(), "out.json"))
	if err == nil {
		t.Error("expected error for missing transcript")
	}
}
