package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/academy-uk/placement-exam/internal/config"
	"github.com/academy-uk/placement-exam/internal/report"
	"github.com/rs/zerolog"
)

const (
	ReportQueueSize    = 64
	ReportMaxAttempts  = 3
	ReportRetryBackoff = 5 * time.Second
)

// ReportWorker delivers graded exam reports to the downstream endpoint.
// Jobs arrive on a bounded channel; delivery failures never propagate back
// to the candidate. An empty endpoint puts the worker in log-only mode.
type ReportWorker struct {
	cfg    *config.Config
	client *http.Client
	queue  chan report.Job
	log    zerolog.Logger
}

// NewReportWorker creates a ReportWorker.
func NewReportWorker(cfg *config.Config, log zerolog.Logger) *ReportWorker {
	return &ReportWorker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.ReportTimeout},
		queue:  make(chan report.Job, ReportQueueSize),
		log:    log.With().Str("component", "report_worker").Logger(),
	}
}

// Enqueue accepts a job without blocking. Returns false when the queue is
// full; the caller decides whether to log or drop.
func (w *ReportWorker) Enqueue(job report.Job) bool {
	select {
	case w.queue <- job:
		return true
	default:
		return false
	}
}

// Start runs the delivery loop until ctx is cancelled, then drains the
// queue so reports accepted before shutdown still go out.
func (w *ReportWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ReportWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Draining report queue...")
			w.drain()
			return

		case job := <-w.queue:
			w.deliver(ctx, job)
		}
	}
}

func (w *ReportWorker) drain() {
	for {
		select {
		case job := <-w.queue:
			w.deliver(context.Background(), job)
		default:
			return
		}
	}
}

// deliver builds the payload and posts it with bounded retries.
func (w *ReportWorker) deliver(ctx context.Context, job report.Job) {
	jobLog := w.log.With().
		Str("student_email", job.StudentEmail).
		Str("recipient", job.Recipient).
		Logger()

	payload, err := report.BuildPayload(job)
	if err != nil {
		jobLog.Error().Err(err).Msg("Report payload build failed")
		return
	}

	if w.cfg.ReportEndpoint == "" {
		jobLog.Info().
			Int("score", payload.Summary.Score).
			Str("band", payload.Summary.Band).
			Msg("No report endpoint configured, report logged only")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		jobLog.Error().Err(err).Msg("Report payload marshal failed")
		return
	}

	for attempt := 1; attempt <= ReportMaxAttempts; attempt++ {
		err := w.post(ctx, body)
		if err == nil {
			jobLog.Info().Int("attempt", attempt).Msg("Report delivered")
			return
		}

		jobLog.Warn().Err(err).Int("attempt", attempt).Msg("Report delivery failed")

		if attempt == ReportMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			// Skip the backoff during shutdown and retry immediately.
		case <-time.After(ReportRetryBackoff):
		}
	}

	jobLog.Error().Msg("Report dropped after max delivery attempts")
}

func (w *ReportWorker) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.ReportEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("report endpoint returned %d", resp.StatusCode)
	}
	return nil
}
