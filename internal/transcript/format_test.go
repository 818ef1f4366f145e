package transcript

import "testing"

func TestFormatUtterances(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "A", Start: 0, End: 2500, Text: "Hello, thanks for joining."},
		{Speaker: "A", Start: 2600, End: 4000, Text: "Let's start."},
		{Speaker: "B", Start: 4100, End: 9000, Text: "Sure, happy to help."},
		{Speaker: "A", Start: 9100, End: 10000, Text: "First question."},
	}

	got := FormatUtterances(utterances)
	want := "\nSpeaker A [0.00 - 2.50]:\n" +
		"    Hello, thanks for joining.\n" +
		"    Let's start.\n" +
		"\nSpeaker B [4.10 - 9.00]:\n" +
		"    Sure, happy to help.\n" +
		"\nSpeaker A [9.10 - 10.00]:\n" +
		"    First question.\n"

	if got != want {
		t.Errorf("unexpected transcript:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatUtterancesEmpty(t *testing.T) {
	if got := FormatUtterances(nil); got != "" {
		t.Errorf("expected empty transcript, got %q", got)
	}
}

func TestIsConfigured(t *testing.T) {
	if NewClient("https://api.example.com", "").IsConfigured() {
		t.Error("client without API key must not be configured")
	}
	if !NewClient("https://api.example.com", "key").IsConfigured() {
		t.Error("client with API key must be configured")
	}
}
