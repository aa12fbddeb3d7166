package grading

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/academy-uk/placement-exam/internal/exam"
	"github.com/academy-uk/placement-exam/internal/model"
)

// WritingCheck produces the qualitative writing feedback: a word count and
// a minimum-length flag. Content quality requires a human examiner.
func WritingCheck(text string) model.WritingFeedback {
	count := len(strings.Fields(text))
	fb := model.WritingFeedback{
		WordCount:    count,
		MinimumWords: exam.MinimumWritingWords,
		MeetsMinimum: count >= exam.MinimumWritingWords,
	}

	switch {
	case count == 0:
		fb.Comment = "No writing submitted."
	case fb.MeetsMinimum:
		fb.Comment = fmt.Sprintf("Meets the %d-word minimum (%d words). Awaiting examiner review.", exam.MinimumWritingWords, count)
	default:
		fb.Comment = fmt.Sprintf("Below the %d-word minimum (%d words). Awaiting examiner review.", exam.MinimumWritingWords, count)
	}
	return fb
}

// SpeakingCheck verifies that a recording link was provided and looks like
// an absolute http(s) URL. The recording itself requires a human examiner.
func SpeakingCheck(link string) model.SpeakingFeedback {
	trimmed := strings.TrimSpace(link)
	fb := model.SpeakingFeedback{
		Link:         trimmed,
		LinkProvided: trimmed != "",
	}

	if !fb.LinkProvided {
		fb.Comment = "No recording link submitted."
		return fb
	}

	u, err := url.ParseRequestURI(trimmed)
	fb.LinkValid = err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	if fb.LinkValid {
		fb.Comment = "Recording link received. Awaiting examiner review."
	} else {
		fb.Comment = "The submitted recording link does not look like a valid URL."
	}
	return fb
}
