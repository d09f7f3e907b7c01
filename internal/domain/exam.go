package domain

// QuestionResult details the grading of a single question within an exam.
// Submitted and Correct carry the human-readable option texts, not the keys;
// Submitted is "" when the student left the question unanswered or sent an
// unknown key.
type QuestionResult struct {
	Prompt    string
	Submitted string
	Correct   string
	IsCorrect bool
}

// ExamResult is the ephemeral outcome of grading one submission. It is
// computed per request and never persisted.
type ExamResult struct {
	Score          int
	TotalQuestions int
	Percentage     float64
	Results        []QuestionResult
}

// ExamInstance binds the exact ordered question sequence shown to a student
// at delivery time, so a later submission can be graded against the same
// sequence even if the approved set changed in between.
type ExamInstance struct {
	ID          string
	Subject     string
	QuestionIDs []string
}
