package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nagoli/user-research-helper/internal/campaign"
	"github.com/nagoli/user-research-helper/internal/dataset"
	"github.com/nagoli/user-research-helper/internal/report"
	"github.com/nagoli/user-research-helper/internal/transcript"
)

// RunTranscripts executes the transcript phase: transcribe audio, extract
// answers, render the transcript report.
func (p *Pipeline) RunTranscripts(ctx context.Context) *Result {
	r := &Result{}

	questions, err := campaign.ParseQuestions(p.ws.QuestionFile())
	if err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Questions", Err: err})
		return r
	}
	r.Steps = append(r.Steps, StepResult{
		Name:    "Questions",
		Summary: fmt.Sprintf("%d questions parsed", len(questions)),
	})
	if p.cfg.Debug.PrintQuestions {
		for _, q := range questions {
			log.Printf("%s: %s", q.ID, q.Text)
		}
	}

	if p.cfg.Steps.TranscribeAudio {
		r.Steps = append(r.Steps, p.runTranscribe(ctx))
	}
	if p.cfg.Steps.AnalyzeTranscripts {
		r.Steps = append(r.Steps, p.runExtract(ctx, questions))
	}
	if p.cfg.Steps.TranscriptReport {
		r.Steps = append(r.Steps, p.runTranscriptReport(questions))
	}

	return r
}

// runTranscribe transcribes every audio file that has no raw transcript
// yet. One failed file never aborts the batch.
func (p *Pipeline) runTranscribe(ctx context.Context) StepResult {
	log.Println("Step: transcribing audio files...")

	audioFiles, err := p.listAudioFiles()
	if err != nil {
		return StepResult{Name: "Transcribe", Err: err}
	}
	if err := os.MkdirAll(p.ws.RawTranscriptDir(), 0o755); err != nil {
		return StepResult{Name: "Transcribe", Err: fmt.Errorf("creating transcript directory: %w", err)}
	}

	transcribed, skipped, failed := 0, 0, 0
	for _, audioFile := range audioFiles {
		if err := p.TranscribeOne(ctx, audioFile); err != nil {
			if err == errAlreadyTranscribed {
				skipped++
				continue
			}
			log.Printf("Error transcribing %s: %v", audioFile, err)
			failed++
			continue
		}
		transcribed++
	}

	return StepResult{
		Name:    "Transcribe",
		Summary: fmt.Sprintf("%d transcribed, %d already done, %d failed", transcribed, skipped, failed),
	}
}

var errAlreadyTranscribed = fmt.Errorf("transcript already exists")

// TranscribeOne transcribes one audio file into the raw transcript
// directory, skipping files that already have a transcript.
func (p *Pipeline) TranscribeOne(ctx context.Context, audioFile string) error {
	name := interviewName(audioFile)
	rawFile := filepath.Join(p.ws.RawTranscriptDir(), name+"_raw.txt")

	if _, err := os.Stat(rawFile); err == nil {
		if p.cfg.Debug.Verbose {
			log.Printf("Skipping transcription for %s, transcript already exists", name)
		}
		return errAlreadyTranscribed
	}

	log.Printf("Transcribing %s...", name)
	text, err := p.transcriber.Transcribe(ctx, audioFile, p.cfg.LanguageCode, p.cfg.WordBoost, p.cfg.SpeakersExpected)
	if err != nil {
		return err
	}
	if err := os.WriteFile(rawFile, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	if p.cfg.Debug.PrintTranscripts {
		log.Printf("Transcript for %s:\n%s", name, text)
	}
	return nil
}

// runExtract analyzes every raw transcript that has no structured file
// yet. A missing transcript is a printed diagnostic, not a batch failure.
func (p *Pipeline) runExtract(ctx context.Context, questions []dataset.Question) StepResult {
	log.Println("Step: extracting answers from transcripts...")

	if p.provider == nil {
		return StepResult{Name: "Extract", Err: fmt.Errorf("no LLM provider available")}
	}
	if err := os.MkdirAll(p.ws.StructuredTranscriptDir(), 0o755); err != nil {
		return StepResult{Name: "Extract", Err: fmt.Errorf("creating structured directory: %w", err)}
	}

	rawFiles, err := p.listDir(p.ws.RawTranscriptDir())
	if err != nil {
		return StepResult{Name: "Extract", Err: err}
	}

	extracted, skipped, failed := 0, 0, 0
	for _, rawFile := range rawFiles {
		name := strings.TrimSuffix(interviewName(rawFile), "_raw")
		structuredFile := filepath.Join(p.ws.StructuredTranscriptDir(), name+"_structured.json")

		if _, err := os.Stat(structuredFile); err == nil {
			if p.cfg.Debug.Verbose {
				log.Printf("Skipping analysis for %s, structured transcript already exists", name)
			}
			skipped++
			continue
		}
		if _, err := os.Stat(rawFile); err != nil {
			log.Printf("Cannot analyze %s: raw transcript not found at %s", name, rawFile)
			failed++
			continue
		}

		log.Printf("Analyzing %s...", name)
		if _, err := transcript.AnalyzeTranscript(ctx, p.provider, p.cfg, rawFile, questions, structuredFile); err != nil {
			log.Printf("Error analyzing %s: %v", name, err)
			failed++
			continue
		}
		extracted++
	}

	return StepResult{
		Name:    "Extract",
		Summary: fmt.Sprintf("%d analyzed, %d already done, %d failed", extracted, skipped, failed),
	}
}

// runTranscriptReport renders all structured transcripts into the answer
// and quote workbooks, and seeds the analysis directory with copies the
// analysis phase consumes.
func (p *Pipeline) runTranscriptReport(questions []dataset.Question) StepResult {
	log.Println("Step: building transcript report...")

	structuredFiles, err := p.listDir(p.ws.StructuredTranscriptDir())
	if err != nil {
		return StepResult{Name: "Report", Err: err}
	}

	var interviews []report.InterviewAnswers
	for _, structuredFile := range structuredFiles {
		if !strings.HasSuffix(structuredFile, "_structured.json") {
			continue
		}
		answers, err := transcript.LoadStructured(structuredFile)
		if err != nil {
			log.Printf("Error loading %s: %v", structuredFile, err)
			continue
		}
		interviews = append(interviews, report.InterviewAnswers{
			Name:    strings.TrimSuffix(interviewName(structuredFile), "_structured"),
			Answers: answers,
		})
	}

	if len(interviews) == 0 {
		return StepResult{Name: "Report", Summary: "no structured transcripts found"}
	}

	reportFile := p.ws.TranscriptReport()
	quoteFile := p.ws.QuoteReport(reportFile)
	if err := report.WriteTranscriptReport(questions, interviews, reportFile, quoteFile); err != nil {
		return StepResult{Name: "Report", Err: err}
	}

	if err := os.MkdirAll(p.ws.AnalysisDir(), 0o755); err != nil {
		return StepResult{Name: "Report", Err: fmt.Errorf("creating analysis directory: %w", err)}
	}
	analysisReport := p.ws.AnalysisTranscriptReport()
	if _, err := os.Stat(analysisReport); os.IsNotExist(err) {
		if err := copyFile(reportFile, analysisReport); err != nil {
			return StepResult{Name: "Report", Err: err}
		}
		if err := copyFile(quoteFile, p.ws.QuoteReport(analysisReport)); err != nil {
			return StepResult{Name: "Report", Err: err}
		}
	}

	return StepResult{
		Name:    "Report",
		Summary: fmt.Sprintf("report for %d interviews saved to %s", len(interviews), reportFile),
	}
}

func (p *Pipeline) listAudioFiles() ([]string, error) {
	entries, err := os.ReadDir(p.ws.AudioDir())
	if err != nil {
		return nil, fmt.Errorf("reading audio directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || p.isIgnored(entry.Name()) {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".m4a", ".mp3", ".wav", ".aac":
			files = append(files, filepath.Join(p.ws.AudioDir(), entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (p *Pipeline) listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || p.isIgnored(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (p *Pipeline) isIgnored(name string) bool {
	for _, ignored := range p.cfg.IgnoredFiles {
		if name == ignored {
			return true
		}
	}
	return false
}

func interviewName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}
