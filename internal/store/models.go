package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// ─── ENUMS ───────────────────────────────────────────────────────────────────

// ReportStatus is the lifecycle of a report row:
// draft → processing → ready, or → error after retries are exhausted.
type ReportStatus string

const (
	ReportStatusDraft      ReportStatus = "draft"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusReady      ReportStatus = "ready"
	ReportStatusError      ReportStatus = "error"
)

// PaymentStatus tracks the Stripe payment lifecycle on a submission.
// Basic diagnoses never leave "unpaid" — they are free.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusFailed PaymentStatus = "failed"
)

// ─── ROW TYPES ───────────────────────────────────────────────────────────────

// Submission is one questionnaire run: the anonymous identity, the selected
// variant, the organisation profile, the raw response snapshot, and the
// payment state for advanced diagnoses.
type Submission struct {
	ID        uuid.UUID
	AnonToken string
	Variant   string

	OrgName        sql.NullString
	Representative sql.NullString
	Email          sql.NullString
	BusinessExp    sql.NullString // "있다" / "없다" — informational
	IndustryExp    sql.NullString

	Responses pqtype.NullRawMessage // question id → raw answer, JSONB

	PaymentStatus       PaymentStatus
	PaidAt              sql.NullTime
	StripeCustomerID    sql.NullString
	StripePaymentIntent sql.NullString

	UtmSource   sql.NullString
	UtmMedium   sql.NullString
	UtmCampaign sql.NullString
	Referrer    sql.NullString
	IpHash      sql.NullString
	UserAgent   sql.NullString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Report is the scored output of one submission. Result holds the full
// serialized scoring payload; Code duplicates the 5-digit diagnostic code in
// its own column so it can be queried without unpacking the JSONB.
type Report struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	AccessToken  string
	Status       ReportStatus
	Code         sql.NullString
	Result       pqtype.NullRawMessage
	ErrorMessage sql.NullString
	GeneratedAt  sql.NullTime
	CreatedAt    time.Time
}

// ReportWithSubmission joins the report with the profile fields needed to
// render it, so the report endpoint reads one row.
type ReportWithSubmission struct {
	Report
	Variant        string
	OrgName        sql.NullString
	Representative sql.NullString
	BusinessExp    sql.NullString
	IndustryExp    sql.NullString
}

// StripeEvent is one row of the webhook idempotency log.
type StripeEvent struct {
	StripeEventID string
	Type          string
	Payload       []byte
	Status        string // received | processed | failed
	Error         sql.NullString
	ReceivedAt    time.Time
	ProcessedAt   sql.NullTime
}
