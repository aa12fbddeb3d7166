package worker

import (
	"context"
	"time"

	"github.com/academy-uk/placement-exam/internal/config"
	"github.com/academy-uk/placement-exam/internal/model"
	"github.com/academy-uk/placement-exam/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const JanitorInterval = time.Minute

// OverdueSubmitter force-submits sessions whose deadline has passed.
type OverdueSubmitter interface {
	SubmitOverdue(id uuid.UUID)
}

// Janitor keeps the in-memory session store bounded: it evicts submitted
// sessions past the retention window and force-submits any in-progress
// session whose deadline passed without the countdown firing.
type Janitor struct {
	cfg       *config.Config
	store     *repository.SessionStore
	submitter OverdueSubmitter
	log       zerolog.Logger
}

// NewJanitor creates a Janitor.
func NewJanitor(cfg *config.Config, store *repository.SessionStore, submitter OverdueSubmitter, log zerolog.Logger) *Janitor {
	return &Janitor{
		cfg:       cfg,
		store:     store,
		submitter: submitter,
		log:       log.With().Str("component", "janitor").Logger(),
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	j.log.Info().Msg("Janitor started")

	ticker := time.NewTicker(JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("Janitor stopped")
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *Janitor) sweep() {
	j.forceSubmitOverdue()

	removed := j.store.SweepSubmitted(j.cfg.SessionRetention)
	if removed > 0 {
		j.log.Info().
			Int("removed", removed).
			Int("remaining", j.store.Len()).
			Msg("Evicted retained sessions")
	}
}

// forceSubmitOverdue is a safety net. The countdown normally auto-submits
// at zero; if a session somehow stays InProgress past its deadline, the
// janitor submits it with whatever answers were collected.
func (j *Janitor) forceSubmitOverdue() {
	now := time.Now()
	for _, session := range j.store.Snapshot() {
		if session.Phase() != model.PhaseInProgress {
			continue
		}
		deadline := session.Deadline()
		if deadline.IsZero() || now.Before(deadline.Add(JanitorInterval)) {
			continue
		}

		j.log.Warn().
			Str("session_id", session.ID.String()).
			Time("deadline", deadline).
			Msg("Overdue in-progress session, forcing submission")
		j.submitter.SubmitOverdue(session.ID)
	}
}
