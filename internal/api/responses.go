package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/socialcampus/svi-diagnosis-backend/internal/store"
	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// ─── PUT /api/submission/:submissionID/responses ─────────────────────────────
//
// Accepts the full current answer map and replaces the stored snapshot. The
// browser sends the complete map on every save (navigation or debounce), so
// replaying the same payload is always safe.

type saveResponsesRequest struct {
	Responses map[string]json.RawMessage `json:"responses"`
}

type saveResponsesResponse struct {
	Saved int `json:"saved"`
}

// handleSaveResponses validates and stores the response snapshot. Validation
// is shallow on purpose: question ids must belong to the submission's variant,
// but answer values are stored as-is — the scoring engine maps anything
// malformed to a zero score rather than rejecting the whole submission.
func (s *Server) handleSaveResponses(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid submission_id")
		return
	}

	var req saveResponsesRequest
	if !decode(w, r, &req) {
		return
	}

	if len(req.Responses) == 0 {
		respondErr(w, http.StatusBadRequest, "responses must not be empty")
		return
	}
	if len(req.Responses) > 100 {
		respondErr(w, http.StatusBadRequest, "too many responses in a single request (max 100)")
		return
	}

	submission, err := s.q.GetSubmissionByID(r.Context(), submissionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("load submission: %w", err))
		return
	}

	cfg, err := svi.ConfigFor(svi.Variant(submission.Variant))
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("resolve variant: %w", err))
		return
	}

	for qid := range req.Responses {
		if _, inScoring := cfg.Scoring[qid]; inScoring {
			continue
		}
		if _, inKinds := cfg.Kinds[qid]; inKinds {
			continue
		}
		respondErr(w, http.StatusBadRequest, fmt.Sprintf("unknown question id %q for variant %s", qid, submission.Variant))
		return
	}

	snapshot, err := json.Marshal(req.Responses)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("marshal responses: %w", err))
		return
	}

	if _, err := s.q.SetSubmissionResponses(r.Context(), store.SetSubmissionResponsesParams{
		ID:        submissionID,
		Responses: pqtype.NullRawMessage{RawMessage: snapshot, Valid: true},
	}); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("save responses: %w", err))
		return
	}

	respond(w, http.StatusOK, saveResponsesResponse{Saved: len(req.Responses)})
}
