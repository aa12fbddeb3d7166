package websocket

import (
	"github.com/academy-uk/placement-exam/internal/countdown"
	"github.com/academy-uk/placement-exam/internal/model"
)

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	// EventTick carries the once-per-second timer snapshot.
	EventTick Event = "tick"
	// EventSubmitted is the terminal event: the session reached Submitted
	// (manually or by expiry) and the stream is about to close.
	EventSubmitted Event = "submitted"
	EventError     Event = "error"
)

// TickResponse is the per-second timer snapshot pushed to the client.
type TickResponse struct {
	Event            Event              `json:"event"`
	Phase            model.ExamPhase    `json:"phase"`
	RemainingSeconds int                `json:"remaining_seconds"`
	Display          string             `json:"display"`
	Severity         countdown.Severity `json:"severity"`
}

// SubmittedResponse closes out the stream once the session is terminal.
type SubmittedResponse struct {
	Event         Event  `json:"event"`
	AutoSubmitted bool   `json:"auto_submitted"`
	Band          string `json:"band"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

// NewTick builds a TickResponse from a session state snapshot.
func NewTick(state model.SessionState) TickResponse {
	return TickResponse{
		Event:            EventTick,
		Phase:            state.Phase,
		RemainingSeconds: state.RemainingSeconds,
		Display:          state.Display,
		Severity:         state.Severity,
	}
}
