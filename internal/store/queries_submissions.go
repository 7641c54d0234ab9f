package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// submissionColumns is the canonical column list; every submission query
// RETURNs it so scanSubmission stays the single point of truth.
const submissionColumns = `
	id, anon_token, variant, org_name, representative, email,
	business_exp, industry_exp, responses,
	payment_status, paid_at, stripe_customer_id, stripe_payment_intent,
	utm_source, utm_medium, utm_campaign, referrer, ip_hash, user_agent,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var s Submission
	err := row.Scan(
		&s.ID, &s.AnonToken, &s.Variant, &s.OrgName, &s.Representative, &s.Email,
		&s.BusinessExp, &s.IndustryExp, &s.Responses,
		&s.PaymentStatus, &s.PaidAt, &s.StripeCustomerID, &s.StripePaymentIntent,
		&s.UtmSource, &s.UtmMedium, &s.UtmCampaign, &s.Referrer, &s.IpHash, &s.UserAgent,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// ─── CreateSubmission ────────────────────────────────────────────────────────

type CreateSubmissionParams struct {
	AnonToken   string
	Variant     string
	UtmSource   sql.NullString
	UtmMedium   sql.NullString
	UtmCampaign sql.NullString
	Referrer    sql.NullString
	IpHash      sql.NullString
	UserAgent   sql.NullString
}

func (q *Queries) CreateSubmission(ctx context.Context, p CreateSubmissionParams) (Submission, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO submissions (anon_token, variant, utm_source, utm_medium, utm_campaign, referrer, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING`+submissionColumns,
		p.AnonToken, p.Variant, p.UtmSource, p.UtmMedium, p.UtmCampaign, p.Referrer, p.IpHash, p.UserAgent,
	)
	return scanSubmission(row)
}

// ─── Reads ───────────────────────────────────────────────────────────────────

func (q *Queries) GetSubmissionByID(ctx context.Context, id uuid.UUID) (Submission, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT`+submissionColumns+` FROM submissions WHERE id = $1`, id)
	return scanSubmission(row)
}

func (q *Queries) GetSubmissionByAnonToken(ctx context.Context, token string) (Submission, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT`+submissionColumns+` FROM submissions WHERE anon_token = $1`, token)
	return scanSubmission(row)
}

// ─── UpdateSubmissionProfile ─────────────────────────────────────────────────

type UpdateSubmissionProfileParams struct {
	ID             uuid.UUID
	OrgName        sql.NullString
	Representative sql.NullString
	BusinessExp    sql.NullString
	IndustryExp    sql.NullString
}

// UpdateSubmissionProfile overwrites only the fields whose values are valid,
// so a partial PATCH never clears a previously saved field.
func (q *Queries) UpdateSubmissionProfile(ctx context.Context, p UpdateSubmissionProfileParams) (Submission, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE submissions SET
			org_name       = COALESCE($2, org_name),
			representative = COALESCE($3, representative),
			business_exp   = COALESCE($4, business_exp),
			industry_exp   = COALESCE($5, industry_exp),
			updated_at     = now()
		WHERE id = $1
		RETURNING`+submissionColumns,
		p.ID, p.OrgName, p.Representative, p.BusinessExp, p.IndustryExp,
	)
	return scanSubmission(row)
}

// ─── SetSubmissionResponses ──────────────────────────────────────────────────

type SetSubmissionResponsesParams struct {
	ID        uuid.UUID
	Responses pqtype.NullRawMessage
}

// SetSubmissionResponses replaces the full response snapshot. The browser
// sends the complete current answer map on every save, so replaying the same
// payload is safe.
func (q *Queries) SetSubmissionResponses(ctx context.Context, p SetSubmissionResponsesParams) (Submission, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE submissions SET responses = $2, updated_at = now()
		WHERE id = $1
		RETURNING`+submissionColumns,
		p.ID, p.Responses,
	)
	return scanSubmission(row)
}

// ─── Payment writes ──────────────────────────────────────────────────────────

type AttachStripeCustomerParams struct {
	ID                  uuid.UUID
	StripeCustomerID    sql.NullString
	StripePaymentIntent sql.NullString
	Email               sql.NullString
}

func (q *Queries) AttachStripeCustomer(ctx context.Context, p AttachStripeCustomerParams) (Submission, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE submissions SET
			stripe_customer_id    = COALESCE($2, stripe_customer_id),
			stripe_payment_intent = $3,
			email                 = COALESCE($4, email),
			updated_at            = now()
		WHERE id = $1
		RETURNING`+submissionColumns,
		p.ID, p.StripeCustomerID, p.StripePaymentIntent, p.Email,
	)
	return scanSubmission(row)
}

// MarkSubmissionPaid matches on stripe_payment_intent because the webhook
// only carries the PaymentIntent id, not our submission id.
func (q *Queries) MarkSubmissionPaid(ctx context.Context, stripePaymentIntent sql.NullString) (Submission, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE submissions SET payment_status = 'paid', paid_at = now(), updated_at = now()
		WHERE stripe_payment_intent = $1
		RETURNING`+submissionColumns,
		stripePaymentIntent,
	)
	return scanSubmission(row)
}

func (q *Queries) MarkSubmissionPaymentFailed(ctx context.Context, stripePaymentIntent sql.NullString) (Submission, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE submissions SET payment_status = 'failed', updated_at = now()
		WHERE stripe_payment_intent = $1
		RETURNING`+submissionColumns,
		stripePaymentIntent,
	)
	return scanSubmission(row)
}
