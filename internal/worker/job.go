package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/socialcampus/svi-diagnosis-backend/internal/email"
	"github.com/socialcampus/svi-diagnosis-backend/internal/store"
	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// Job scores a submission and finalizes its report. Each invocation of Run is
// self-contained: it loads everything it needs from the database, so a job can
// be retried or picked up by a different process after a crash.
type Job struct {
	store  *store.Store
	q      store.Querier
	mailer email.Sender
	logger *slog.Logger
}

// NewJob constructs a Job with all required dependencies.
func NewJob(st *store.Store, q store.Querier, mailer email.Sender, logger *slog.Logger) *Job {
	return &Job{
		store:  st,
		q:      q,
		mailer: mailer,
		logger: logger,
	}
}

// Run executes the scoring pipeline for a single report:
//
//  1. Load the report and its submission.
//  2. Decode the stored responses.
//  3. Score them for the submission's diagnosis variant.
//  4. Persist the result (status=ready, code, result snapshot) atomically.
//  5. Send the delivery email.
//
// Any error before step 4 is returned to the Runner, which will retry up to
// MaxRetries times before calling store.MarkReportFailed.
func (j *Job) Run(ctx context.Context, reportID uuid.UUID) error {
	log := j.logger.With("report_id", reportID)
	log.Info("job: starting")

	// ── 1. Load report + submission ───────────────────────────────────────────
	report, err := j.q.GetReportByID(ctx, reportID)
	if err != nil {
		return fmt.Errorf("job: get report: %w", err)
	}

	// A report that already reached ready needs no work. This happens when the
	// poller and the in-process channel both deliver the same report, or when a
	// duplicate webhook re-enqueues a finished report.
	if report.Status == store.ReportStatusReady {
		log.Debug("job: report already ready, skipping")
		return nil
	}

	submission, err := j.q.GetSubmissionByID(ctx, report.SubmissionID)
	if err != nil {
		return fmt.Errorf("job: get submission: %w", err)
	}

	// ── 2. Decode responses ───────────────────────────────────────────────────
	if !submission.Responses.Valid || len(submission.Responses.RawMessage) == 0 {
		return fmt.Errorf("job: submission %s has no responses", submission.ID)
	}

	var responses svi.Responses
	if err := json.Unmarshal(submission.Responses.RawMessage, &responses); err != nil {
		return fmt.Errorf("job: decode responses: %w", err)
	}

	log.Debug("job: loaded responses", "count", len(responses), "variant", submission.Variant)

	// ── 3. Score ──────────────────────────────────────────────────────────────
	result, err := svi.Score(responses, svi.Variant(submission.Variant))
	if err != nil {
		return fmt.Errorf("job: score submission %s: %w", submission.ID, err)
	}

	// ── 4. Persist atomically ─────────────────────────────────────────────────
	finalReport, err := j.store.PersistScoredReport(ctx, store.PersistScoredReportParams{
		ReportID: reportID,
		Result:   result,
	})
	if err != nil {
		return fmt.Errorf("job: persist report: %w", err)
	}

	log.Info("job: report persisted",
		"submission_id", submission.ID,
		"code", result.Code,
		"access_token", finalReport.AccessToken,
	)

	// ── 5. Send delivery email ────────────────────────────────────────────────
	if !submission.Email.Valid || submission.Email.String == "" {
		log.Warn("job: submission has no email address, skipping delivery email")
		return nil
	}

	if err := j.mailer.SendReportReady(ctx, email.ReportReadyParams{
		To:          submission.Email.String,
		OrgName:     submission.OrgName.String,
		AccessToken: finalReport.AccessToken,
	}); err != nil {
		// Log but do not fail — the user can still access their report via the
		// token, and a retried job would re-finalize an already-ready report.
		log.Error("job: failed to send report email",
			"to", submission.Email.String,
			"error", err,
		)
	}

	return nil
}
