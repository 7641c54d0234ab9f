package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// ─── INPUT TYPES ─────────────────────────────────────────────────────────────

// PersistScoredReportParams is everything the worker hands to the store once
// scoring is complete.
type PersistScoredReportParams struct {
	ReportID uuid.UUID
	Result   *svi.Result // from svi.Score
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrReportAlreadyExists is returned by StartReport and InitialiseReport when
// a report row for the submission already exists. Callers should treat this as
// idempotent success — a replayed finalize request or a duplicate delivery of
// payment_intent.succeeded must not create a second report.
var ErrReportAlreadyExists = errors.New("store: report already exists for submission")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// StartReport creates the report row for a submission and is the entry point
// for the free basic-diagnosis path. It atomically:
//
//  1. Checks whether a report row already exists (idempotency guard).
//  2. Creates a new report row in draft status with a fresh access token.
//
// A replayed finalize request returns ErrReportAlreadyExists together with the
// existing report, so the handler can respond with the original access token.
func (s *Store) StartReport(ctx context.Context, submissionID uuid.UUID) (Report, error) {
	var report Report

	err := s.withTx(ctx, func(ctx context.Context, q Querier) error {
		existing, err := q.GetReportBySubmissionID(ctx, submissionID)
		if err == nil {
			report = existing
			return ErrReportAlreadyExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("StartReport: check existing report: %w", err)
		}

		token, err := newAccessToken()
		if err != nil {
			return err
		}

		created, err := q.CreateReport(ctx, CreateReportParams{
			SubmissionID: submissionID,
			AccessToken:  token,
		})
		if err != nil {
			return fmt.Errorf("StartReport: create report: %w", err)
		}

		report = created
		return nil
	})

	if errors.Is(err, ErrReportAlreadyExists) {
		return report, ErrReportAlreadyExists
	}
	if err != nil {
		return Report{}, err
	}

	return report, nil
}

// InitialiseReport is called by the Stripe webhook handler on
// payment_intent.succeeded. It atomically:
//
//  1. Marks the submission as paid.
//  2. Checks whether a report row already exists (idempotency guard).
//  3. Creates a new report row in draft status.
//
// If the submission was already marked paid and a report already exists
// (duplicate webhook delivery), ErrReportAlreadyExists is returned. The caller
// should log this at debug level and return HTTP 200 to Stripe immediately —
// no further work is needed.
//
// If MarkSubmissionPaid succeeds but CreateReport fails, the whole transaction
// rolls back so the submission remains unpaid. The next webhook delivery will
// retry cleanly.
func (s *Store) InitialiseReport(ctx context.Context, stripePaymentIntent string) (Report, error) {
	var report Report

	err := s.withTx(ctx, func(ctx context.Context, q Querier) error {
		// 1. Mark submission paid. MarkSubmissionPaid matches on
		//    stripe_payment_intent, so it is safe to call for any PI string.
		submission, err := q.MarkSubmissionPaid(ctx, sql.NullString{
			String: stripePaymentIntent,
			Valid:  true,
		})
		if err != nil {
			return fmt.Errorf("InitialiseReport: mark submission paid: %w", err)
		}

		// 2. Idempotency guard — report may already exist from a prior delivery.
		existing, err := q.GetReportBySubmissionID(ctx, submission.ID)
		if err == nil {
			// Row found — surface the sentinel and return the existing report so
			// the caller can enqueue it for processing if its status is not ready.
			report = existing
			return ErrReportAlreadyExists
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("InitialiseReport: check existing report: %w", err)
		}

		// 3. Create draft report.
		token, err := newAccessToken()
		if err != nil {
			return err
		}
		created, err := q.CreateReport(ctx, CreateReportParams{
			SubmissionID: submission.ID,
			AccessToken:  token,
		})
		if err != nil {
			return fmt.Errorf("InitialiseReport: create report: %w", err)
		}

		report = created
		return nil
	})

	if errors.Is(err, ErrReportAlreadyExists) {
		return report, ErrReportAlreadyExists
	}
	if err != nil {
		return Report{}, err
	}

	return report, nil
}

// PersistScoredReport is called by the background worker once scoring is
// complete. It atomically:
//
//  1. Sets the report status to processing (acquires the work slot).
//  2. Finalises the report (status=ready, code column, result snapshot).
//
// If any step fails the entire transaction rolls back, leaving the report in
// its previous state. The worker's retry loop will pick it up again via
// ListPendingReports.
//
// The result snapshot is serialized here so that the stored JSONB and the
// code column written in the same transaction can never disagree.
func (s *Store) PersistScoredReport(ctx context.Context, p PersistScoredReportParams) (Report, error) {
	var report Report

	err := s.withTx(ctx, func(ctx context.Context, q Querier) error {
		// Claim the report for processing. This is a CAS-style update: if
		// another worker process already set status=processing, this still
		// succeeds (it is idempotent for the status field). The real guard
		// against double-processing is the serializable transaction — only one
		// writer can commit the finalized row for a given report_id.
		if _, err := q.SetReportProcessing(ctx, p.ReportID); err != nil {
			return fmt.Errorf("PersistScoredReport: set processing: %w", err)
		}

		resultJSON, err := json.Marshal(p.Result)
		if err != nil {
			return fmt.Errorf("PersistScoredReport: marshal result: %w", err)
		}

		finalised, err := q.FinalizeReport(ctx, FinalizeReportParams{
			ID:   p.ReportID,
			Code: sql.NullString{String: p.Result.Code, Valid: p.Result.Code != ""},
			Result: pqtype.NullRawMessage{
				RawMessage: resultJSON,
				Valid:      true,
			},
		})
		if err != nil {
			return fmt.Errorf("PersistScoredReport: finalize report: %w", err)
		}

		report = finalised
		return nil
	})

	if err != nil {
		return Report{}, err
	}

	return report, nil
}

// MarkReportFailed sets the report status to error with a descriptive message.
// Called by the worker when scoring fails permanently (i.e. after exhausting
// retries). This is a single-query write — no transaction needed — but it
// lives here because it is logically part of the report lifecycle and the
// worker should not call Querier directly for this.
func (s *Store) MarkReportFailed(ctx context.Context, reportID uuid.UUID, reason string) (Report, error) {
	report, err := s.q.SetReportError(ctx, SetReportErrorParams{
		ID: reportID,
		ErrorMessage: sql.NullString{
			String: reason,
			Valid:  true,
		},
	})
	if err != nil {
		return Report{}, fmt.Errorf("MarkReportFailed: %w", err)
	}
	return report, nil
}
