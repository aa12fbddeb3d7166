package model

// AnswerSheet holds the raw values collected from the candidate, keyed by
// question id per section. Missing answers stay as empty strings and are
// graded as incorrect, never treated as errors.
type AnswerSheet struct {
	Listening    map[string]string `json:"listening"`
	Reading      map[string]string `json:"reading"`
	WritingText  string            `json:"writing_text"`
	SpeakingLink string            `json:"speaking_link"`
}

// NewAnswerSheet returns an empty sheet with initialized maps.
func NewAnswerSheet() AnswerSheet {
	return AnswerSheet{
		Listening: make(map[string]string),
		Reading:   make(map[string]string),
	}
}

// Clone deep-copies the sheet so graded snapshots cannot be mutated later.
func (s AnswerSheet) Clone() AnswerSheet {
	out := AnswerSheet{
		Listening:    make(map[string]string, len(s.Listening)),
		Reading:      make(map[string]string, len(s.Reading)),
		WritingText:  s.WritingText,
		SpeakingLink: s.SpeakingLink,
	}
	for k, v := range s.Listening {
		out.Listening[k] = v
	}
	for k, v := range s.Reading {
		out.Reading[k] = v
	}
	return out
}

// StartExamRequest carries the identity fields required to start.
type StartExamRequest struct {
	StudentName  string `json:"student_name" binding:"required,min=2,max=120"`
	StudentEmail string `json:"student_email" binding:"required,email"`
}

// SaveAnswersRequest is a partial answer-sheet update. Map entries overwrite
// by key; pointer fields distinguish "not sent" from "cleared".
type SaveAnswersRequest struct {
	Listening    map[string]string `json:"listening"`
	Reading      map[string]string `json:"reading"`
	WritingText  *string           `json:"writing_text"`
	SpeakingLink *string           `json:"speaking_link"`
}

// Apply merges the update into a sheet.
func (r SaveAnswersRequest) Apply(sheet *AnswerSheet) {
	if sheet.Listening == nil {
		sheet.Listening = make(map[string]string)
	}
	if sheet.Reading == nil {
		sheet.Reading = make(map[string]string)
	}
	for k, v := range r.Listening {
		sheet.Listening[k] = v
	}
	for k, v := range r.Reading {
		sheet.Reading[k] = v
	}
	if r.WritingText != nil {
		sheet.WritingText = *r.WritingText
	}
	if r.SpeakingLink != nil {
		sheet.SpeakingLink = *r.SpeakingLink
	}
}

// SubmitExamRequest is the payload of the designated submit control.
// Confirm must be true for a manual submit; timer expiry bypasses it.
type SubmitExamRequest struct {
	Confirm bool               `json:"confirm"`
	Answers SaveAnswersRequest `json:"answers"`
}
