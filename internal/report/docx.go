package report

import (
	"fmt"

	"github.com/gomutex/godocx"

	"github.com/nagoli/user-research-helper/internal/dataset"
)

const (
	docFontName  = "Calibri"
	docFontSize  = 11
	docTitleSize = 16
	docHeadSize  = 13
)

// WriteResultsDocument renders the enriched analyses as a document: one
// heading per question, the analysis paragraph, and the quotes in italics.
func WriteResultsDocument(results []dataset.ResultAnalysis, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	title := doc.AddParagraph("")
	title.AddText("Analysis Results").Font(docFontName).Size(docTitleSize).Color("000000").Bold(true)

	for _, result := range results {
		doc.AddParagraph("")

		heading := doc.AddParagraph("")
		heading.AddText(fmt.Sprintf("Q%s - %s", result.QuestionID, result.QuestionText)).
			Font(docFontName).Size(docHeadSize).Color("000000").Bold(true)

		analysis := doc.AddParagraph("")
		analysis.AddText(result.Analysis).Font(docFontName).Size(docFontSize).Color("000000")

		if result.Quotes != "" {
			quotes := doc.AddParagraph("")
			quotes.AddText(result.Quotes).Font(docFontName).Size(docFontSize).Color("000000").Italic(true)
		}
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("saving results document: %w", err)
	}
	return nil
}
