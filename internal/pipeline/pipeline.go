// Package pipeline orchestrates the two campaign phases: audio to
// transcript report, and transcript report to cross-segment results.
package pipeline

import (
	"context"
	"os"

	"github.com/nagoli/user-research-helper/internal/config"
	"github.com/nagoli/user-research-helper/internal/llm"
	"github.com/nagoli/user-research-helper/internal/transcript"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a phase run.
type Result struct {
	Steps []StepResult
}

// Transcriber is the transcription collaborator seam.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageCode string, wordBoost []string, speakersExpected int) (string, error)
	IsConfigured() bool
}

// Pipeline drives the pipeline steps against one campaign workspace.
// Every external call is a blocking round-trip issued one at a time, in
// deterministic iteration order.
type Pipeline struct {
	cfg         *config.Config
	ws          *config.Workspace
	provider    llm.Provider
	transcriber Transcriber
}

// New creates a pipeline with the configured collaborators.
func New(cfg *config.Config, ws *config.Workspace) *Pipeline {
	provider := llm.CreateProvider(
		cfg.LLM.Provider,
		cfg.LLM.Model,
		cfg.LLM.OllamaURL,
		cfg.LLM.OpenAIModel,
		cfg.LLM.APIKeyEnv,
	)
	transcriber := transcript.NewClient(
		cfg.Transcription.BaseURL,
		os.Getenv(cfg.Transcription.APIKeyEnv),
	)
	return &Pipeline{cfg: cfg, ws: ws, provider: provider, transcriber: transcriber}
}

// NewWithCollaborators creates a pipeline with explicit collaborators.
func NewWithCollaborators(cfg *config.Config, ws *config.Workspace, provider llm.Provider, transcriber Transcriber) *Pipeline {
	return &Pipeline{cfg: cfg, ws: ws, provider: provider, transcriber: transcriber}
}
