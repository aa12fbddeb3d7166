package model

// QuestionKind distinguishes how a paper question is answered.
type QuestionKind string

const (
	KindShortAnswer    QuestionKind = "SHORT_ANSWER"
	KindMultipleChoice QuestionKind = "MULTIPLE_CHOICE"
	KindGapFill        QuestionKind = "GAP_FILL"
)

// PaperOption is one selectable choice of a multiple-choice question.
type PaperOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PaperQuestion is a question as shown to the candidate, never carrying
// the accepted answers.
type PaperQuestion struct {
	ID      string        `json:"id"`
	Text    string        `json:"text"`
	Kind    QuestionKind  `json:"kind"`
	Options []PaperOption `json:"options,omitempty"`
}

// PaperSection is one of the four exam sections.
type PaperSection struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Instructions string          `json:"instructions"`
	AudioURL     string          `json:"audio_url,omitempty"`
	Passage      string          `json:"passage,omitempty"`
	Prompt       string          `json:"prompt,omitempty"`
	MinimumWords int             `json:"minimum_words,omitempty"`
	Questions    []PaperQuestion `json:"questions,omitempty"`
}

// ExamPaper is the candidate-facing exam content, compiled in at build time.
type ExamPaper struct {
	Title           string         `json:"title"`
	DurationMinutes int            `json:"duration_minutes"`
	Sections        []PaperSection `json:"sections"`
}
