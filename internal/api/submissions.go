package api

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/socialcampus/svi-diagnosis-backend/internal/store"
	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// ─── POST /api/submission ─────────────────────────────────────────────────────

type createSubmissionRequest struct {
	// Variant selects the questionnaire: "basic-svi" or "advanced-svi".
	Variant string `json:"variant"`

	// Profile fields are optional at creation — the user fills them in Step 1.
	OrgName        string `json:"org_name"`
	Representative string `json:"representative"`
	BusinessExp    string `json:"business_exp"`
	IndustryExp    string `json:"industry_exp"`
}

type createSubmissionResponse struct {
	SubmissionID string `json:"submission_id"`
	AnonToken    string `json:"anon_token"`
	Variant      string `json:"variant"`
}

// handleCreateSubmission creates an anonymous submission for a new visitor.
// Called once when the diagnosis page first loads.
//
// The anon_token is returned to the browser and stored in sessionStorage.
// It is sent as X-Anon-Token on all subsequent submission-scoped requests.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := svi.ConfigFor(svi.Variant(req.Variant)); err != nil {
		respondErr(w, http.StatusBadRequest, "variant must be basic-svi or advanced-svi")
		return
	}

	if msg, ok := validateExperience(req.BusinessExp, req.IndustryExp); !ok {
		respondErr(w, http.StatusBadRequest, msg)
		return
	}

	// Generate a cryptographically random token. 32 bytes → 64 hex chars.
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("generate anon token: %w", err))
		return
	}
	anonToken := hex.EncodeToString(tokenBytes)

	// Hash the real IP for fraud logging — never store the raw IP.
	ipHash := hashIP(realIP(r))

	submission, err := s.q.CreateSubmission(r.Context(), store.CreateSubmissionParams{
		AnonToken:   anonToken,
		Variant:     req.Variant,
		UtmSource:   nullString(r.URL.Query().Get("utm_source")),
		UtmMedium:   nullString(r.URL.Query().Get("utm_medium")),
		UtmCampaign: nullString(r.URL.Query().Get("utm_campaign")),
		Referrer:    nullString(r.Referer()),
		IpHash:      nullString(ipHash),
		UserAgent:   nullString(r.UserAgent()),
	})
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("create submission: %w", err))
		return
	}

	// If profile fields were provided at creation time, persist them immediately.
	if req.OrgName != "" || req.Representative != "" || req.BusinessExp != "" || req.IndustryExp != "" {
		_, err = s.q.UpdateSubmissionProfile(r.Context(), store.UpdateSubmissionProfileParams{
			ID:             submission.ID,
			OrgName:        nullString(req.OrgName),
			Representative: nullString(req.Representative),
			BusinessExp:    nullString(req.BusinessExp),
			IndustryExp:    nullString(req.IndustryExp),
		})
		if err != nil {
			// Non-fatal — the profile can be set via PATCH later.
			s.logger.Warn("create submission: failed to set initial profile",
				"submission_id", submission.ID,
				"error", err,
				logField(r),
			)
		}
	}

	respond(w, http.StatusCreated, createSubmissionResponse{
		SubmissionID: submission.ID.String(),
		AnonToken:    anonToken,
		Variant:      submission.Variant,
	})
}

// ─── PATCH /api/submission/:submissionID/profile ──────────────────────────────

type updateProfileRequest struct {
	OrgName        string `json:"org_name"`
	Representative string `json:"representative"`
	Email          string `json:"email"`
	BusinessExp    string `json:"business_exp"`
	IndustryExp    string `json:"industry_exp"`
}

type updateProfileResponse struct {
	SubmissionID   string `json:"submission_id"`
	OrgName        string `json:"org_name"`
	Representative string `json:"representative"`
	BusinessExp    string `json:"business_exp"`
	IndustryExp    string `json:"industry_exp"`
}

// handleUpdateProfile persists the organisation profile from Step 1. The route
// is protected by requireAnonToken middleware, so submission_id in the URL is
// already verified to belong to the token sender.
//
// Only fields present in the request are written; a partial PATCH never clears
// a previously saved field.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	submissionID, err := uuid.Parse(chi.URLParam(r, "submissionID"))
	if err != nil {
		respondErr(w, http.StatusBadRequest, "invalid submission_id")
		return
	}

	var req updateProfileRequest
	if !decode(w, r, &req) {
		return
	}

	if msg, ok := validateExperience(req.BusinessExp, req.IndustryExp); !ok {
		respondErr(w, http.StatusBadRequest, msg)
		return
	}

	submission, err := s.q.UpdateSubmissionProfile(r.Context(), store.UpdateSubmissionProfileParams{
		ID:             submissionID,
		OrgName:        nullString(req.OrgName),
		Representative: nullString(req.Representative),
		BusinessExp:    nullString(req.BusinessExp),
		IndustryExp:    nullString(req.IndustryExp),
	})
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("update profile: %w", err))
		return
	}

	respond(w, http.StatusOK, updateProfileResponse{
		SubmissionID:   submission.ID.String(),
		OrgName:        submission.OrgName.String,
		Representative: submission.Representative.String,
		BusinessExp:    submission.BusinessExp.String,
		IndustryExp:    submission.IndustryExp.String,
	})
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

// validateExperience checks the 있다/없다 answers. Empty means "not provided",
// which is fine — both fields are optional.
func validateExperience(businessExp, industryExp string) (string, bool) {
	for _, v := range []string{businessExp, industryExp} {
		if v != "" && v != "있다" && v != "없다" {
			return "business_exp and industry_exp must be 있다 or 없다", false
		}
	}
	return "", true
}

// nullString converts a Go string to sql.NullString. Empty string → NULL.
func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// hashIP returns the hex-encoded SHA-256 of the IP string.
func hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])
}

// realIP extracts the client IP, honouring X-Real-IP set by a reverse proxy.
func realIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	// RemoteAddr is "ip:port".
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx >= 0 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
