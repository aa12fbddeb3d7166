package model

import "time"

// QuestionResult records the grading outcome for one objective question.
type QuestionResult struct {
	ID        string   `json:"id"`
	Submitted string   `json:"submitted"`
	Expected  []string `json:"expected"`
	Correct   bool     `json:"correct"`
}

// SectionResult aggregates one objective section.
type SectionResult struct {
	Name      string           `json:"name"`
	Questions []QuestionResult `json:"questions"`
	Correct   int              `json:"correct"`
	Total     int              `json:"total"`
}

// WritingFeedback is qualitative only; writing never contributes to the
// numeric score.
type WritingFeedback struct {
	WordCount    int    `json:"word_count"`
	MinimumWords int    `json:"minimum_words"`
	MeetsMinimum bool   `json:"meets_minimum"`
	Comment      string `json:"comment"`
}

// SpeakingFeedback is qualitative only; speaking never contributes to the
// numeric score.
type SpeakingFeedback struct {
	Link         string `json:"link"`
	LinkProvided bool   `json:"link_provided"`
	LinkValid    bool   `json:"link_valid"`
	Comment      string `json:"comment"`
}

// GradedResult is the complete grading outcome. Created once at submission
// and never mutated afterwards.
type GradedResult struct {
	Listening SectionResult    `json:"listening"`
	Reading   SectionResult    `json:"reading"`
	Writing   WritingFeedback  `json:"writing"`
	Speaking  SpeakingFeedback `json:"speaking"`

	// Score counts correct objective questions out of Total (listening +
	// reading). Writing/speaking never contribute to the numeric score.
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	Band       string    `json:"band"`
	GradedAt   time.Time `json:"graded_at"`
}
