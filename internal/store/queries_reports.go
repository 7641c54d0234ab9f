package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const reportColumns = `
	id, submission_id, access_token, status, code, result,
	error_message, generated_at, created_at`

func scanReport(row rowScanner) (Report, error) {
	var r Report
	err := row.Scan(
		&r.ID, &r.SubmissionID, &r.AccessToken, &r.Status, &r.Code, &r.Result,
		&r.ErrorMessage, &r.GeneratedAt, &r.CreatedAt,
	)
	return r, err
}

// ─── CreateReport ────────────────────────────────────────────────────────────

type CreateReportParams struct {
	SubmissionID uuid.UUID
	AccessToken  string
}

func (q *Queries) CreateReport(ctx context.Context, p CreateReportParams) (Report, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO reports (submission_id, access_token)
		VALUES ($1, $2)
		RETURNING`+reportColumns,
		p.SubmissionID, p.AccessToken,
	)
	return scanReport(row)
}

// ─── Reads ───────────────────────────────────────────────────────────────────

func (q *Queries) GetReportByID(ctx context.Context, id uuid.UUID) (Report, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT`+reportColumns+` FROM reports WHERE id = $1`, id)
	return scanReport(row)
}

func (q *Queries) GetReportBySubmissionID(ctx context.Context, submissionID uuid.UUID) (Report, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT`+reportColumns+` FROM reports WHERE submission_id = $1`, submissionID)
	return scanReport(row)
}

// GetReportByAccessToken joins the submission profile so the report endpoint
// renders from a single row.
func (q *Queries) GetReportByAccessToken(ctx context.Context, accessToken string) (ReportWithSubmission, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT r.id, r.submission_id, r.access_token, r.status, r.code, r.result,
		       r.error_message, r.generated_at, r.created_at,
		       s.variant, s.org_name, s.representative, s.business_exp, s.industry_exp
		FROM reports r
		JOIN submissions s ON s.id = r.submission_id
		WHERE r.access_token = $1`,
		accessToken,
	)

	var r ReportWithSubmission
	err := row.Scan(
		&r.ID, &r.SubmissionID, &r.AccessToken, &r.Status, &r.Code, &r.Result,
		&r.ErrorMessage, &r.GeneratedAt, &r.CreatedAt,
		&r.Variant, &r.OrgName, &r.Representative, &r.BusinessExp, &r.IndustryExp,
	)
	return r, err
}

// ListPendingReports returns reports that still need scoring, oldest first.
// Processing rows are included so jobs interrupted by a crash are retried.
func (q *Queries) ListPendingReports(ctx context.Context) ([]Report, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT`+reportColumns+` FROM reports
		WHERE status IN ('draft', 'processing')
		ORDER BY created_at
		LIMIT 50`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// ─── Lifecycle writes ────────────────────────────────────────────────────────

func (q *Queries) SetReportProcessing(ctx context.Context, id uuid.UUID) (Report, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE reports SET status = 'processing', error_message = NULL
		WHERE id = $1
		RETURNING`+reportColumns,
		id,
	)
	return scanReport(row)
}

type FinalizeReportParams struct {
	ID     uuid.UUID
	Code   sql.NullString
	Result pqtype.NullRawMessage
}

func (q *Queries) FinalizeReport(ctx context.Context, p FinalizeReportParams) (Report, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE reports SET status = 'ready', code = $2, result = $3, generated_at = now()
		WHERE id = $1
		RETURNING`+reportColumns,
		p.ID, p.Code, p.Result,
	)
	return scanReport(row)
}

type SetReportErrorParams struct {
	ID           uuid.UUID
	ErrorMessage sql.NullString
}

func (q *Queries) SetReportError(ctx context.Context, p SetReportErrorParams) (Report, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE reports SET status = 'error', error_message = $2
		WHERE id = $1
		RETURNING`+reportColumns,
		p.ID, p.ErrorMessage,
	)
	return scanReport(row)
}
