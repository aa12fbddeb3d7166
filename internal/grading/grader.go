// Package grading scores an answer sheet against the compiled-in answer
// key. Grading is deterministic and side-effect free: the same sheet and
// key always produce the same result.
package grading

import (
	"strings"
	"time"

	"github.com/academy-uk/placement-exam/internal/exam"
	"github.com/academy-uk/placement-exam/internal/model"
)

// normalize prepares a submitted value for comparison: trimmed and
// casefolded. Accepted answers in the key are stored already normalized.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isAccepted tests set membership of the normalized submission. An empty
// submission never matches.
func isAccepted(submitted string, accepted []string) bool {
	norm := normalize(submitted)
	if norm == "" {
		return false
	}
	for _, a := range accepted {
		if norm == a {
			return true
		}
	}
	return false
}

// Grade scores the sheet. Objective sections (listening, reading) count
// toward the numeric score; writing and speaking produce qualitative
// feedback only.
func Grade(sheet model.AnswerSheet, key exam.AnswerKey) *model.GradedResult {
	listening := gradeSection("listening", key.Listening, sheet.Listening)
	reading := gradeSection("reading", key.Reading, sheet.Reading)

	score := listening.Correct + reading.Correct
	total := key.Total()

	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	return &model.GradedResult{
		Listening:  listening,
		Reading:    reading,
		Writing:    WritingCheck(sheet.WritingText),
		Speaking:   SpeakingCheck(sheet.SpeakingLink),
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Band:       BandLabel(percentage),
		GradedAt:   time.Now(),
	}
}

// gradeSection walks the key in paper order; questions absent from the
// sheet grade as incorrect with an empty submitted value.
func gradeSection(name string, entries []exam.KeyEntry, answers map[string]string) model.SectionResult {
	section := model.SectionResult{
		Name:      name,
		Questions: make([]model.QuestionResult, 0, len(entries)),
		Total:     len(entries),
	}

	for _, entry := range entries {
		submitted := answers[entry.ID]
		correct := isAccepted(submitted, entry.Accepted)
		if correct {
			section.Correct++
		}
		section.Questions = append(section.Questions, model.QuestionResult{
			ID:        entry.ID,
			Submitted: submitted,
			Expected:  entry.Accepted,
			Correct:   correct,
		})
	}

	return section
}
