package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// query method works identically inside and outside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries executes single-statement queries against a DBTX.
type Queries struct {
	db DBTX
}

// NewQueries returns a Queries bound to the given pool or transaction.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries scoped to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Querier is the query surface handlers and the worker depend on. The
// concrete implementation is *Queries; tests inject a stub.
type Querier interface {
	CreateSubmission(ctx context.Context, p CreateSubmissionParams) (Submission, error)
	GetSubmissionByID(ctx context.Context, id uuid.UUID) (Submission, error)
	GetSubmissionByAnonToken(ctx context.Context, token string) (Submission, error)
	UpdateSubmissionProfile(ctx context.Context, p UpdateSubmissionProfileParams) (Submission, error)
	SetSubmissionResponses(ctx context.Context, p SetSubmissionResponsesParams) (Submission, error)
	AttachStripeCustomer(ctx context.Context, p AttachStripeCustomerParams) (Submission, error)
	MarkSubmissionPaid(ctx context.Context, stripePaymentIntent sql.NullString) (Submission, error)
	MarkSubmissionPaymentFailed(ctx context.Context, stripePaymentIntent sql.NullString) (Submission, error)

	CreateReport(ctx context.Context, p CreateReportParams) (Report, error)
	GetReportByID(ctx context.Context, id uuid.UUID) (Report, error)
	GetReportBySubmissionID(ctx context.Context, submissionID uuid.UUID) (Report, error)
	GetReportByAccessToken(ctx context.Context, accessToken string) (ReportWithSubmission, error)
	ListPendingReports(ctx context.Context) ([]Report, error)
	SetReportProcessing(ctx context.Context, id uuid.UUID) (Report, error)
	FinalizeReport(ctx context.Context, p FinalizeReportParams) (Report, error)
	SetReportError(ctx context.Context, p SetReportErrorParams) (Report, error)

	InsertStripeEvent(ctx context.Context, p InsertStripeEventParams) (StripeEvent, error)
	MarkStripeEventProcessed(ctx context.Context, stripeEventID string) (StripeEvent, error)
	MarkStripeEventFailed(ctx context.Context, p MarkStripeEventFailedParams) (StripeEvent, error)
}

var _ Querier = (*Queries)(nil)
