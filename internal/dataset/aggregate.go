package dataset

// BuildSegmentDataset folds an InterviewDataset into a SegmentDataset: for
// every interview, for every segment it belongs to, every non-empty answer
// either starts a new SegmentAnswer or is appended to the existing one's
// rough answers. The latest raw answer is kept as a provisional summary
// until the summarizer replaces it.
//
// The fold is pure and processes interviews in dataset order, segments in
// each interview's sorted order, and answers in question order, so running
// it twice on the same dataset yields identical rough-answer ordering.
func BuildSegmentDataset(ivds *InterviewDataset) *SegmentDataset {
	segments := make(map[string]map[string]*SegmentAnswer)

	for _, interview := range ivds.Interviews {
		for _, segment := range interview.Segments {
			byQuestion, ok := segments[segment]
			if !ok {
				byQuestion = make(map[string]*SegmentAnswer)
				segments[segment] = byQuestion
			}

			for _, question := range ivds.Questions {
				answer, ok := interview.Answers[question.ID]
				if !ok || answer == "" {
					continue
				}
				existing, ok := byQuestion[question.ID]
				if !ok {
					byQuestion[question.ID] = &SegmentAnswer{
						SegmentName:   segment,
						QuestionID:    question.ID,
						AnswerSummary: answer,
						RoughAnswers:  []string{answer},
					}
					continue
				}
				existing.RoughAnswers = append(existing.RoughAnswers, answer)
				existing.AnswerSummary = answer
			}
		}
	}

	return &SegmentDataset{Questions: ivds.Questions, Segments: segments}
}
