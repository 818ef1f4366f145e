// Package transcript turns interview audio into formatted transcripts and
// extracts per-question answers from them.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is a speech-to-text client with speaker diarization, speaking the
// AssemblyAI REST API.
type Client struct {
	BaseURL      string
	APIKey       string
	client       *http.Client
	pollInterval time.Duration
}

// NewClient creates a transcription client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		client:       &http.Client{Timeout: 120 * time.Second},
		pollInterval: 3 * time.Second,
	}
}

// IsConfigured checks if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.APIKey != ""
}

// Utterance is one contiguous stretch of speech by a single speaker.
// Start and End are in milliseconds.
type Utterance struct {
	Speaker string `json:"speaker"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

// Transcribe uploads an audio file, requests a diarized transcript, polls
// until it is done, and returns the formatted text.
func (c *Client) Transcribe(ctx context.Context, audioPath, languageCode string, wordBoost []string, speakersExpected int) (string, error) {
	audioURL, err := c.upload(ctx, audioPath)
	if err != nil {
		return "", err
	}

	id, err := c.requestTranscript(ctx, audioURL, languageCode, wordBoost, speakersExpected)
	if err != nil {
		return "", err
	}

	utterances, err := c.waitForTranscript(ctx, id)
	if err != nil {
		return "", err
	}

	return FormatUtterances(utterances), nil
}

func (c *Client) upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("opening audio file: %w", err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v2/upload", f)
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	return result.UploadURL, nil
}

func (c *Client) requestTranscript(ctx context.Context, audioURL, languageCode string, wordBoost []string, speakersExpected int) (string, error) {
	body := map[string]any{
		"audio_url":      audioURL,
		"speaker_labels": true,
		"language_code":  languageCode,
	}
	if speakersExpected > 0 {
		body["speakers_expected"] = speakersExpected
	}
	if len(wordBoost) > 0 {
		body["word_boost"] = wordBoost
		body["boost_param"] = "high"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling transcript request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v2/transcript", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating transcript request: %w", err)
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcript request returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding transcript response: %w", err)
	}
	return result.ID, nil
}

func (c *Client) waitForTranscript(ctx context.Context, id string) ([]Utterance, error) {
	for {
		req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/v2/transcript/"+id, nil)
		if err != nil {
			return nil, fmt.Errorf("creating poll request: %w", err)
		}
		req.Header.Set("Authorization", c.APIKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("poll error: %w", err)
		}

		var result struct {
			Status     string      `json:"status"`
			Error      string      `json:"error"`
			Utterances []Utterance `json:"utterances"`
		}
		decodeErr := json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("decoding poll response: %w", decodeErr)
		}

		switch result.Status {
		case "completed":
			return result.Utterances, nil
		case "error":
			return nil, fmt.Errorf("transcription failed: %s", result.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// FormatUtterances renders utterances grouped by speaker: a speaker change
// forces a new header line with the speaker label and a timestamp range in
// seconds, followed by the indented utterance texts.
func FormatUtterances(utterances []Utterance) string {
	var buf bytes.Buffer
	currentSpeaker := ""

	for _, u := range utterances {
		speaker := "Speaker " + u.Speaker
		if speaker != currentSpeaker {
			fmt.Fprintf(&buf, "\n%s [%.2f - %.2f]:\n", speaker, float64(u.Start)/1000, float64(u.End)/1000)
			currentSpeaker = speaker
		}
		fmt.Fprintf(&buf, "    %s\n", u.Text)
	}

	return buf.String()
}
