// Package report turns a graded session into the outbound exam report:
// a view-model, a rendered HTML document, and the JSON payload handed to
// the downstream endpoint. No grading logic lives here.
package report

import (
	"time"

	"github.com/academy-uk/placement-exam/internal/model"
)

// Job is one report dispatch: everything the downstream target needs,
// captured at submission time and immutable afterwards.
type Job struct {
	Recipient     string              `json:"recipient"`
	StudentName   string              `json:"student_name"`
	StudentEmail  string              `json:"student_email"`
	SubmittedAt   time.Time           `json:"submitted_at"`
	AutoSubmitted bool                `json:"auto_submitted"`
	Answers       model.AnswerSheet   `json:"answers"`
	Result        *model.GradedResult `json:"result"`
}

// Payload is the JSON body POSTed downstream: the raw field values plus the
// grading summary and the rendered HTML report.
type Payload struct {
	Recipient     string            `json:"recipient"`
	StudentName   string            `json:"student_name"`
	StudentEmail  string            `json:"student_email"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	AutoSubmitted bool              `json:"auto_submitted"`
	Answers       model.AnswerSheet `json:"answers"`
	Summary       Summary           `json:"summary"`
	ReportHTML    string            `json:"report_html"`
}

// Summary is the compact grading outcome.
type Summary struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Band       string  `json:"band"`
}

// BuildPayload renders the HTML report and assembles the outbound payload.
func BuildPayload(job Job) (Payload, error) {
	html, err := RenderHTML(job)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Recipient:     job.Recipient,
		StudentName:   job.StudentName,
		StudentEmail:  job.StudentEmail,
		SubmittedAt:   job.SubmittedAt,
		AutoSubmitted: job.AutoSubmitted,
		Answers:       job.Answers,
		Summary: Summary{
			Score:      job.Result.Score,
			Total:      job.Result.Total,
			Percentage: job.Result.Percentage,
			Band:       job.Result.Band,
		},
		ReportHTML: html,
	}, nil
}
