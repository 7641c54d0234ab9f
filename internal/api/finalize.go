package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/socialcampus/svi-diagnosis-backend/internal/store"
	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// ─── POST /api/submission/:submissionID/finalize ─────────────────────────────
//
// Finalize locks in the saved responses and starts report generation.
//
//   - basic-svi submissions are free: the report row is created immediately.
//   - advanced-svi submissions must be paid first. The webhook handler creates
//     the report on payment_intent.succeeded, so an unpaid finalize is a 409
//     pointing the client at checkout.
//
// Finalize is idempotent: a replayed request returns the existing report's
// access token with 200.

type finalizeResponse struct {
	ReportID    string `json:"report_id"`
	AccessToken string `json:"access_token"`
	Status      string `json:"status"`
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid submission_id")
		return
	}

	submission, err := s.q.GetSubmissionByID(r.Context(), submissionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("load submission: %w", err))
		return
	}

	if !submission.Responses.Valid || len(submission.Responses.RawMessage) == 0 {
		respondErr(w, http.StatusBadRequest, "responses must be saved before finalizing")
		return
	}

	// Advanced diagnoses are gated on payment. The paid flag is only ever set
	// by the Stripe webhook, so a 409 here means checkout has not completed.
	if svi.Variant(submission.Variant) == svi.VariantAdvanced &&
		submission.PaymentStatus != store.PaymentStatusPaid {
		respondErr(w, http.StatusConflict, "advanced diagnosis requires payment before finalizing")
		return
	}

	report, err := s.store.StartReport(r.Context(), submissionID)
	if errors.Is(err, store.ErrReportAlreadyExists) {
		// Replay or post-payment finalize — return the existing report. If it
		// is still pending (e.g. the original enqueue was lost to a restart),
		// nudge the worker again; Enqueue and the job are both idempotent.
		if report.Status == store.ReportStatusDraft || report.Status == store.ReportStatusProcessing {
			if err := s.worker.Enqueue(r.Context(), report.ID); err != nil {
				s.logger.Warn("finalize: re-enqueue failed, poller will recover",
					"report_id", report.ID, "error", err, logField(r))
			}
		}
		respond(w, http.StatusOK, finalizeResponse{
			ReportID:    report.ID.String(),
			AccessToken: report.AccessToken,
			Status:      string(report.Status),
		})
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("start report: %w", err))
		return
	}

	if err := s.worker.Enqueue(r.Context(), report.ID); err != nil {
		// Non-fatal: the pending-report poller picks the draft up shortly.
		s.logger.Warn("finalize: enqueue failed, poller will recover",
			"report_id", report.ID, "error", err, logField(r))
	}

	respond(w, http.StatusCreated, finalizeResponse{
		ReportID:    report.ID.String(),
		AccessToken: report.AccessToken,
		Status:      string(report.Status),
	})
}
