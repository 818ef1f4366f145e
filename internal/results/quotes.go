package results

import (
	"strconv"
	"strings"

	"github.com/nagoli/user-research-helper/internal/dataset"
)

// Quotes start at the third column of the quote table; the question ID is
// the stringified column index, matching the IDs the segment report parser
// assigns.
const firstQuoteColumn = 2

// AddQuotes attaches segment-tagged verbatim quotes to the matching
// analyses. Each non-blank quote cell becomes "<quote> (<segments>)" (no
// parenthetical when the interview has no tags) and quotes accumulate per
// question in table row order. Analyses with no quotes keep their quotes
// field untouched, so the pass is an idempotent no-op on non-matching
// questions.
func AddQuotes(analyses []dataset.ResultAnalysis, rows [][]string) []dataset.ResultAnalysis {
	quotesByQuestion := make(map[string][]string)

	for _, row := range rows {
		var segments []string
		if len(row) > 1 {
			segments = splitTags(row[1])
		}

		for colIdx := firstQuoteColumn; colIdx < len(row); colIdx++ {
			quote := strings.TrimSpace(row[colIdx])
			if quote == "" {
				continue
			}
			if len(segments) > 0 {
				quote += " (" + strings.Join(segments, ", ") + ")"
			}
			questionID := strconv.Itoa(colIdx)
			quotesByQuestion[questionID] = append(quotesByQuestion[questionID], quote)
		}
	}

	for i := range analyses {
		if quotes, ok := quotesByQuestion[analyses[i].QuestionID]; ok {
			analyses[i].Quotes = strings.Join(quotes, "\n")
		}
	}
	return analyses
}

// splitTags splits a comma-separated tag list, dropping blanks but keeping
// the table's tag order for the quote parentheticals.
func splitTags(tags string) []string {
	var out []string
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
