package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/academy-uk/placement-exam/internal/model"
)

// view is the template's data model.
type view struct {
	StudentName   string
	StudentEmail  string
	SubmittedAt   string
	AutoSubmitted bool
	Score         int
	Total         int
	Percentage    string
	Band          string
	Listening     []questionLine
	Reading       []questionLine
	Writing       model.WritingFeedback
	WritingText   string
	Speaking      model.SpeakingFeedback
}

type questionLine struct {
	ID        string
	Submitted string
	Expected  string
	Correct   bool
}

const reportTemplate = `<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { width: 80%; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
  h2 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
  .score-box { background-color: #ecf0f1; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
  .feedback-section { margin-top: 20px; padding: 15px; border: 1px solid #ccc; border-radius: 5px; }
  .correct { color: green; font-weight: bold; }
  .incorrect { color: red; font-weight: bold; }
</style>
</head>
<body>
<div class="container">
  <h2>English Proficiency Exam Report</h2>
  <p><strong>Student Name:</strong> {{.StudentName}}</p>
  <p><strong>Student Email:</strong> {{.StudentEmail}}</p>
  <p><strong>Date of Submission:</strong> {{.SubmittedAt}}{{if .AutoSubmitted}} (auto-submitted at time expiry){{end}}</p>

  <div class="score-box">
    <h3>Objective Sections Score (Listening &amp; Reading)</h3>
    <p><strong>Score:</strong> {{.Score}} / {{.Total}} ({{.Percentage}}%)</p>
    <p><strong>Band:</strong> {{.Band}}</p>
  </div>

  <h2>Objective Questions Breakdown</h2>

  <h3>Section 1: Listening</h3>
  <ul>
  {{range .Listening}}<li>{{.ID}}: <span class="{{if .Correct}}correct{{else}}incorrect{{end}}">{{if .Correct}}Correct{{else}}Incorrect{{end}}</span> - Answer: {{.Submitted}}{{if not .Correct}} (expected: {{.Expected}}){{end}}</li>
  {{end}}</ul>

  <h3>Section 2: Reading</h3>
  <ul>
  {{range .Reading}}<li>{{.ID}}: <span class="{{if .Correct}}correct{{else}}incorrect{{end}}">{{if .Correct}}Correct{{else}}Incorrect{{end}}</span> - Answer: {{.Submitted}}{{if not .Correct}} (expected: {{.Expected}}){{end}}</li>
  {{end}}</ul>

  <h2>Examiner Review Sections</h2>

  <h3>Section 3: Writing</h3>
  <div class="feedback-section">
    <p><strong>Word Count:</strong> {{.Writing.WordCount}} (minimum {{.Writing.MinimumWords}})</p>
    <p><strong>Feedback:</strong> {{.Writing.Comment}}</p>
    <p><strong>Student Answer:</strong></p>
    <p style="white-space: pre-wrap; border-left: 3px solid #3498db; padding-left: 10px;">{{.WritingText}}</p>
  </div>

  <h3>Section 4: Speaking</h3>
  <div class="feedback-section">
    {{if .Speaking.LinkProvided}}<p><strong>Audio Link:</strong> <a href="{{.Speaking.Link}}">{{.Speaking.Link}}</a></p>{{end}}
    <p><strong>Feedback:</strong> {{.Speaking.Comment}}</p>
  </div>
</div>
</body>
</html>`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// RenderHTML renders the report document for a graded job.
func RenderHTML(job Job) (string, error) {
	if job.Result == nil {
		return "", fmt.Errorf("render report: no graded result")
	}

	v := view{
		StudentName:   job.StudentName,
		StudentEmail:  job.StudentEmail,
		SubmittedAt:   job.SubmittedAt.UTC().Format(time.RFC1123),
		AutoSubmitted: job.AutoSubmitted,
		Score:         job.Result.Score,
		Total:         job.Result.Total,
		Percentage:    fmt.Sprintf("%.1f", job.Result.Percentage),
		Band:          job.Result.Band,
		Listening:     lines(job.Result.Listening),
		Reading:       lines(job.Result.Reading),
		Writing:       job.Result.Writing,
		WritingText:   job.Answers.WritingText,
		Speaking:      job.Result.Speaking,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, v); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

func lines(section model.SectionResult) []questionLine {
	out := make([]questionLine, 0, len(section.Questions))
	for _, q := range section.Questions {
		out = append(out, questionLine{
			ID:        strings.ToUpper(q.ID),
			Submitted: q.Submitted,
			Expected:  strings.Join(q.Expected, " / "),
			Correct:   q.Correct,
		})
	}
	return out
}
