// Package campaign parses the campaign question definition.
package campaign

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nagoli/user-research-helper/internal/dataset"
)

// Questions start at the third report column: column 0 is the interview
// name and column 1 the segment tags.
const firstQuestionColumn = 2

// ParseQuestions reads a question definition where questions are separated
// by one or more blank lines. IDs are generated Q0..Qn in document order,
// multi-line questions are joined with single spaces, and bullet glyphs are
// rewritten as dashed list markers. Blank runs never produce empty
// questions.
func ParseQuestions(path string) ([]dataset.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening question file: %w", err)
	}
	defer f.Close()

	var questions []dataset.Question
	var current []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(current, " "))
		if text != "" {
			questions = append(questions, dataset.Question{
				ID:          fmt.Sprintf("Q%d", len(questions)),
				Text:        text,
				ColumnIndex: firstQuestionColumn + len(questions),
			})
		}
		current = current[:0]
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(current) > 0 {
				flush()
			}
			continue
		}
		if strings.HasPrefix(line, "•") {
			line = "- " + strings.TrimSpace(strings.TrimPrefix(line, "•"))
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading question file: %w", err)
	}
	flush()

	return questions, nil
}
