package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/socialcampus/svi-diagnosis-backend/internal/store"
	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// ─── GET /api/report/:accessToken ────────────────────────────────────────────

type reportResponse struct {
	ReportID       string      `json:"report_id"`
	Status         string      `json:"status"`
	Variant        string      `json:"variant"`
	OrgName        string      `json:"org_name,omitempty"`
	Representative string      `json:"representative,omitempty"`
	BusinessExp    string      `json:"business_exp,omitempty"`
	IndustryExp    string      `json:"industry_exp,omitempty"`
	Code           string      `json:"code,omitempty"`
	Result         *svi.Result `json:"result"`
	GeneratedAt    string      `json:"generated_at,omitempty"`
}

// handleGetReport serves the completed diagnosis report. The access token is
// an opaque 24-byte base64url string stored on the report row — no submission
// authentication is needed. The user receives this link in their email.
//
// Returns 404 for an unknown token. Returns 202 Accepted while the report is
// still being generated (status != ready) so the frontend can poll.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	accessToken := chi.URLParam(r, "accessToken")
	if accessToken == "" {
		respondErr(w, http.StatusBadRequest, "missing access token")
		return
	}

	// Load the report and its submission profile in one query.
	row, err := s.q.GetReportByAccessToken(r.Context(), accessToken)
	if errors.Is(err, sql.ErrNoRows) {
		respondErr(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get report: %w", err))
		return
	}

	// Report is still being generated — tell the client to poll.
	if row.Status != store.ReportStatusReady {
		respond(w, http.StatusAccepted, map[string]string{
			"status":  string(row.Status),
			"message": "report is being generated, please check back shortly",
		})
		return
	}

	if !row.Result.Valid {
		// A ready report always has a result snapshot; this is a data bug.
		s.respondInternalErr(w, r, fmt.Errorf("report %s is ready but has no result", row.ID))
		return
	}

	var result svi.Result
	if err := json.Unmarshal(row.Result.RawMessage, &result); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("decode report result: %w", err))
		return
	}

	generatedAt := ""
	if row.GeneratedAt.Valid {
		generatedAt = row.GeneratedAt.Time.UTC().Format("2006-01-02T15:04:05Z")
	}

	respond(w, http.StatusOK, reportResponse{
		ReportID:       row.ID.String(),
		Status:         string(row.Status),
		Variant:        row.Variant,
		OrgName:        row.OrgName.String,
		Representative: row.Representative.String,
		BusinessExp:    row.BusinessExp.String,
		IndustryExp:    row.IndustryExp.String,
		Code:           row.Code.String,
		Result:         &result,
		GeneratedAt:    generatedAt,
	})
}
