package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nagoli/user-research-helper/internal/config"
	"github.com/nagoli/user-research-helper/internal/pipeline"
	"github.com/nagoli/user-research-helper/internal/results"
	"github.com/nagoli/user-research-helper/internal/watcher"
)

var version = "dev"

var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "user-research-helper",
	Short: "Interview analysis pipeline",
	Long: "user-research-helper transcribes user interviews, extracts per-question answers,\n" +
		"summarizes them by respondent segment, and synthesizes cross-segment results.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}
		// API keys may live in a .env next to the binary; absence is fine.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("user-research-helper", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold a campaign directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if err := os.MkdirAll(root, 0o755); err != nil {
			return fmt.Errorf("creating campaign directory: %w", err)
		}
		if err := os.MkdirAll(filepath.Join(root, "audios"), 0o755); err != nil {
			return fmt.Errorf("creating audio directory: %w", err)
		}

		configFile := filepath.Join(root, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			fmt.Printf("Config already exists: %s\n", configFile)
		} else {
			if err := os.WriteFile(configFile, config.DefaultConfigYAML, 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Printf("Created config: %s\n", configFile)
		}

		questionFile := filepath.Join(root, "questions.txt")
		if _, err := os.Stat(questionFile); os.IsNotExist(err) {
			stub := "What is your overall experience with the product?\n\nHow easy was it to get started?\n"
			if err := os.WriteFile(questionFile, []byte(stub), 0o644); err != nil {
				return fmt.Errorf("writing questions: %w", err)
			}
			fmt.Printf("Created question stub: %s\n", questionFile)
		}

		fmt.Println("Drop interview recordings into audios/ and edit config.yaml to enable pipeline steps.")
		return nil
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [dir]",
	Short: "Run the transcript phase: transcribe audio, extract answers, build the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ws, err := openCampaign(args[0])
		if err != nil {
			return err
		}
		result := pipeline.New(cfg, ws).RunTranscripts(context.Background())
		return printResult(result)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Run the analysis phase: segment summaries, result synthesis, quotes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ws, err := openCampaign(args[0])
		if err != nil {
			return err
		}
		result := pipeline.New(cfg, ws).RunAnalysis(context.Background())
		if len(result.Steps) == 0 {
			fmt.Println("No analysis steps enabled. Enable them under 'steps' in config.yaml.")
			return nil
		}
		return printResult(result)
	},
}

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Run both phases back to back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ws, err := openCampaign(args[0])
		if err != nil {
			return err
		}
		p := pipeline.New(cfg, ws)
		ctx := context.Background()

		if err := printResult(p.RunTranscripts(ctx)); err != nil {
			return err
		}
		return printResult(p.RunAnalysis(ctx))
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch the audio directory and transcribe new recordings as they arrive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ws, err := openCampaign(args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(ws.RawTranscriptDir(), 0o755); err != nil {
			return fmt.Errorf("creating transcript directory: %w", err)
		}

		p := pipeline.New(cfg, ws)
		w, err := watcher.New(ws.AudioDir(), func(ctx context.Context, path string) error {
			return p.TranscribeOne(ctx, path)
		})
		if err != nil {
			return err
		}
		defer w.Stop()

		fmt.Println("Press Ctrl+C to stop")
		return w.Start(context.Background())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Show campaign progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ws, err := openCampaign(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Campaign: %s\n\n", ws.Root)
		fmt.Println("Transcripts:")
		fmt.Printf("  Audio files: %d\n", countFiles(ws.AudioDir(), cfg, func(name string) bool {
			switch strings.ToLower(filepath.Ext(name)) {
			case ".m4a", ".mp3", ".wav", ".aac":
				return true
			}
			return false
		}))
		fmt.Printf("  Raw transcripts: %d\n", countFiles(ws.RawTranscriptDir(), cfg, func(name string) bool {
			return strings.HasSuffix(name, "_raw.txt")
		}))
		fmt.Printf("  Structured transcripts: %d\n", countFiles(ws.StructuredTranscriptDir(), cfg, func(name string) bool {
			return strings.HasSuffix(name, "_structured.json")
		}))

		fmt.Println("\nAnalysis:")
		fmt.Printf("  Segment checkpoints: %d\n", countFiles(ws.SegmentAnalysisDir(), cfg, func(name string) bool {
			return strings.HasSuffix(name, ".json") &&
				name != filepath.Base(ws.InterviewDatasetFile()) &&
				name != filepath.Base(ws.SegmentDatasetFile())
		}))
		if analyses, err := results.LoadResults(ws.ResultsFile()); err == nil {
			fmt.Printf("  Result analyses: %d\n", len(analyses))
		} else {
			fmt.Println("  Result analyses: none")
		}
		return nil
	},
}

// openCampaign resolves the campaign root and loads its config document.
// Both failures are configuration errors and abort the run.
func openCampaign(root string) (*config.Config, *config.Workspace, error) {
	ws, err := config.NewWorkspace(root)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := ws.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Debug.Verbose {
		verbose = true
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	return cfg, ws, nil
}

func printResult(result *pipeline.Result) error {
	var firstErr error
	for _, step := range result.Steps {
		fmt.Printf("\n%s\n", step.Name)
		if step.Err != nil {
			fmt.Printf("  Error: %v\n", step.Err)
			if firstErr == nil {
				firstErr = step.Err
			}
		} else {
			fmt.Printf("  %s\n", step.Summary)
		}
	}
	fmt.Println()
	return firstErr
}

func countFiles(dir string, cfg *config.Config, match func(string) bool) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ignored := false
		for _, name := range cfg.IgnoredFiles {
			if entry.Name() == name {
				ignored = true
				break
			}
		}
		if !ignored && match(entry.Name()) {
			count++
		}
	}
	return count
}
