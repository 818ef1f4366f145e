// Package config loads the campaign configuration document and derives the
// campaign directory layout. A Config is constructed once at process start
// and passed explicitly to every component that needs it.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Language         string        `yaml:"language"`
	LanguageCode     string        `yaml:"language_code"`
	WordBoost        []string      `yaml:"word_boost"`
	SpeakersExpected int           `yaml:"speakers_expected"`
	IgnoredFiles     []string      `yaml:"ignored_files"`
	Steps            Steps         `yaml:"steps"`
	LLM              LLM           `yaml:"llm"`
	Transcription    Transcription `yaml:"transcription"`
	Context          Context       `yaml:"context"`
	Debug            Debug         `yaml:"debug"`
}

// Steps toggles the pipeline stages; they are read from the config
// document, never from the command line.
type Steps struct {
	TranscribeAudio    bool `yaml:"transcribe_audio"`
	AnalyzeTranscripts bool `yaml:"analyze_transcripts"`
	TranscriptReport   bool `yaml:"transcript_report"`
	SegmentSummaries   bool `yaml:"segment_summaries"`
	ResultAnalysis     bool `yaml:"result_analysis"`
	AddQuotes          bool `yaml:"add_quotes"`
}

type LLM struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	OllamaURL   string `yaml:"ollama_url"`
	OpenAIModel string `yaml:"openai_model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	MaxTokens   int    `yaml:"max_tokens"`
}

type Transcription struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Context carries the free-text instructions injected into the synthesis
// prompts at each stage.
type Context struct {
	Common           string `yaml:"common"`
	AnswerExtraction string `yaml:"answer_extraction"`
	AnswerAnalysis   string `yaml:"answer_analysis"`
	ResultAnalysis   string `yaml:"result_analysis"`
}

type Debug struct {
	Verbose          bool `yaml:"verbose"`
	PrintQuestions   bool `yaml:"print_questions"`
	PrintTranscripts bool `yaml:"print_transcripts"`
	PrintAnalysis    bool `yaml:"print_analysis"`
}

// Load reads and parses the config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Language:         "English",
		LanguageCode:     "en",
		SpeakersExpected: 2,
		IgnoredFiles:     []string{".DS_Store", ".gitkeep", "Thumbs.db", ".gitignore"},
		Steps: Steps{
			TranscribeAudio:    true,
			AnalyzeTranscripts: true,
			TranscriptReport:   true,
		},
		LLM: LLM{
			Provider:    "openai",
			Model:       "qwen2.5:7b",
			OllamaURL:   "http://localhost:11434",
			OpenAIModel: "gpt-4o",
			APIKeyEnv:   "OPENAI_API_KEY",
			MaxTokens:   1024,
		},
		Transcription: Transcription{
			BaseURL:   "https://api.assemblyai.com",
			APIKeyEnv: "ASSEMBLYAI_API_KEY",
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}
