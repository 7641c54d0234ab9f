package store_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/socialcampus/svi-diagnosis-backend/internal/store"
	"github.com/socialcampus/svi-diagnosis-backend/internal/svi"
)

// ─── TEST INFRASTRUCTURE ──────────────────────────────────────────────────────

// openTestDB returns a *sql.DB from DATABASE_URL. Skips if the env var is
// not set so the test suite still passes in CI without a Postgres instance.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set — skipping store integration tests")
	}
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if err := pool.PingContext(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("ping: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

// seedSubmission inserts a minimal anonymous submission, registers cleanup,
// and returns it. The report row, if any, cascades on delete.
func seedSubmission(t *testing.T, ctx context.Context, pool *sql.DB, q store.Querier, variant string) store.Submission {
	t.Helper()
	s, err := q.CreateSubmission(ctx, store.CreateSubmissionParams{
		AnonToken: "test_token_" + t.Name() + "_" + uuid.NewString(),
		Variant:   variant,
	})
	if err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.ExecContext(ctx, "DELETE FROM submissions WHERE id=$1", s.ID)
	})
	return s
}

// attachPI attaches a fake Stripe PI to a submission so InitialiseReport can
// call MarkSubmissionPaid, which looks up the row by stripe_payment_intent.
func attachPI(t *testing.T, ctx context.Context, q store.Querier, submissionID uuid.UUID, piID string) {
	t.Helper()
	_, err := q.AttachStripeCustomer(ctx, store.AttachStripeCustomerParams{
		ID:                  submissionID,
		StripePaymentIntent: sql.NullString{String: piID, Valid: true},
		Email:               sql.NullString{String: "test@example.com", Valid: true},
	})
	if err != nil {
		t.Fatalf("attachPI: %v", err)
	}
}

// ─── AttachPaymentIntent ──────────────────────────────────────────────────────

func TestAttachPaymentIntent_FirstCallSucceeds(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "advanced-svi")

	updated, err := st.AttachPaymentIntent(ctx, store.AttachPaymentIntentParams{
		SubmissionID:        submission.ID,
		StripeCustomerID:    "cus_test_first",
		StripePaymentIntent: "pi_test_first_" + t.Name(),
		Email:               "test@example.com",
	})
	if err != nil {
		t.Fatalf("AttachPaymentIntent: %v", err)
	}
	if !updated.StripePaymentIntent.Valid {
		t.Error("expected StripePaymentIntent to be set")
	}
	if updated.Email.String != "test@example.com" {
		t.Errorf("email: got %q", updated.Email.String)
	}
}

func TestAttachPaymentIntent_SecondCallReturnsErrAlreadyAttached(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "advanced-svi")

	params := store.AttachPaymentIntentParams{
		SubmissionID:        submission.ID,
		StripeCustomerID:    "cus_test",
		StripePaymentIntent: "pi_test_race_" + t.Name(),
		Email:               "test@example.com",
	}

	if _, err := st.AttachPaymentIntent(ctx, params); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// Second call for same submission must return the sentinel error.
	params.StripePaymentIntent = "pi_test_duplicate_" + t.Name()
	_, err := st.AttachPaymentIntent(ctx, params)
	if !errors.Is(err, store.ErrPaymentIntentAlreadyAttached) {
		t.Errorf("expected ErrPaymentIntentAlreadyAttached, got: %v", err)
	}
}

// ─── StartReport ──────────────────────────────────────────────────────────────

func TestStartReport_CreatesDraftReport(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "basic-svi")

	report, err := st.StartReport(ctx, submission.ID)
	if err != nil {
		t.Fatalf("StartReport: %v", err)
	}
	if report.Status != store.ReportStatusDraft {
		t.Errorf("expected status draft, got %s", report.Status)
	}
	if report.SubmissionID != submission.ID {
		t.Error("submission ID mismatch")
	}
	if report.AccessToken == "" {
		t.Error("expected non-empty access token")
	}
}

func TestStartReport_ReplayReturnsErrAlreadyExists(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "basic-svi")

	first, err := st.StartReport(ctx, submission.ID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	second, err := st.StartReport(ctx, submission.ID)
	if !errors.Is(err, store.ErrReportAlreadyExists) {
		t.Errorf("expected ErrReportAlreadyExists, got: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("returned report ID mismatch: got %s, want %s", second.ID, first.ID)
	}
	if second.AccessToken != first.AccessToken {
		t.Error("replay must return the original access token")
	}
}

// ─── InitialiseReport ─────────────────────────────────────────────────────────

func TestInitialiseReport_CreatesDraftReport(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	piID := "pi_init_draft_" + t.Name()
	submission := seedSubmission(t, ctx, pool, q, "advanced-svi")
	attachPI(t, ctx, q, submission.ID, piID)

	report, err := st.InitialiseReport(ctx, piID)
	if err != nil {
		t.Fatalf("InitialiseReport: %v", err)
	}
	if report.Status != store.ReportStatusDraft {
		t.Errorf("expected status draft, got %s", report.Status)
	}
	if report.SubmissionID != submission.ID {
		t.Error("submission ID mismatch")
	}
	if report.AccessToken == "" {
		t.Error("expected non-empty access token")
	}
}

func TestInitialiseReport_DuplicateDeliveryReturnsErrAlreadyExists(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	piID := "pi_idem_" + t.Name()
	submission := seedSubmission(t, ctx, pool, q, "advanced-svi")
	attachPI(t, ctx, q, submission.ID, piID)

	first, err := st.InitialiseReport(ctx, piID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	second, err := st.InitialiseReport(ctx, piID)
	if !errors.Is(err, store.ErrReportAlreadyExists) {
		t.Errorf("expected ErrReportAlreadyExists, got: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("returned report ID mismatch: got %s, want %s", second.ID, first.ID)
	}
}

func TestInitialiseReport_MarksSubmissionPaid(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	piID := "pi_paid_" + t.Name()
	submission := seedSubmission(t, ctx, pool, q, "advanced-svi")
	attachPI(t, ctx, q, submission.ID, piID)

	if _, err := st.InitialiseReport(ctx, piID); err != nil {
		t.Fatalf("InitialiseReport: %v", err)
	}

	updated, err := q.GetSubmissionByID(ctx, submission.ID)
	if err != nil {
		t.Fatalf("GetSubmissionByID: %v", err)
	}
	if updated.PaymentStatus != store.PaymentStatusPaid {
		t.Errorf("expected payment_status=paid, got %s", updated.PaymentStatus)
	}
	if !updated.PaidAt.Valid {
		t.Error("expected paid_at to be set")
	}
}

// ─── MarkReportFailed ─────────────────────────────────────────────────────────

func TestMarkReportFailed_SetsErrorStatus(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "basic-svi")

	report, err := st.StartReport(ctx, submission.ID)
	if err != nil {
		t.Fatalf("StartReport: %v", err)
	}

	failed, err := st.MarkReportFailed(ctx, report.ID, "responses missing")
	if err != nil {
		t.Fatalf("MarkReportFailed: %v", err)
	}
	if failed.Status != store.ReportStatusError {
		t.Errorf("expected status=error, got %s", failed.Status)
	}
	if !failed.ErrorMessage.Valid || failed.ErrorMessage.String != "responses missing" {
		t.Errorf("error message: %+v", failed.ErrorMessage)
	}
}

// ─── PersistScoredReport ──────────────────────────────────────────────────────

func TestPersistScoredReport_FinalizesReport(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "basic-svi")

	report, err := st.StartReport(ctx, submission.ID)
	if err != nil {
		t.Fatalf("StartReport: %v", err)
	}

	result, err := svi.Score(svi.Responses{"q1": 4, "q14": 6, "q15": 4}, svi.VariantBasic)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	finalised, err := st.PersistScoredReport(ctx, store.PersistScoredReportParams{
		ReportID: report.ID,
		Result:   result,
	})
	if err != nil {
		t.Fatalf("PersistScoredReport: %v", err)
	}

	if finalised.Status != store.ReportStatusReady {
		t.Errorf("expected status=ready, got %s", finalised.Status)
	}
	if !finalised.Code.Valid || finalised.Code.String != result.Code {
		t.Errorf("code column: %+v, want %q", finalised.Code, result.Code)
	}
	if !finalised.GeneratedAt.Valid {
		t.Error("expected generated_at to be set")
	}
	if !finalised.Result.Valid {
		t.Fatal("expected result snapshot to be set")
	}

	var stored svi.Result
	if err := json.Unmarshal(finalised.Result.RawMessage, &stored); err != nil {
		t.Fatalf("stored result is not valid JSON: %v", err)
	}
	if stored.Code != result.Code {
		t.Errorf("stored result code: got %q, want %q", stored.Code, result.Code)
	}
	if len(stored.FactorScores) != len(result.FactorScores) {
		t.Errorf("stored factor count: got %d, want %d", len(stored.FactorScores), len(result.FactorScores))
	}
}

func TestGetReportByAccessToken_JoinsSubmissionProfile(t *testing.T) {
	pool := openTestDB(t)
	ctx := context.Background()
	q := store.NewQueries(pool)
	st := store.New(pool, q)

	submission := seedSubmission(t, ctx, pool, q, "basic-svi")
	if _, err := q.UpdateSubmissionProfile(ctx, store.UpdateSubmissionProfileParams{
		ID:      submission.ID,
		OrgName: sql.NullString{String: "소셜벤처A", Valid: true},
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	report, err := st.StartReport(ctx, submission.ID)
	if err != nil {
		t.Fatalf("StartReport: %v", err)
	}

	row, err := q.GetReportByAccessToken(ctx, report.AccessToken)
	if err != nil {
		t.Fatalf("GetReportByAccessToken: %v", err)
	}
	if row.ID != report.ID {
		t.Error("report ID mismatch")
	}
	if row.Variant != "basic-svi" {
		t.Errorf("variant: got %q", row.Variant)
	}
	if row.OrgName.String != "소셜벤처A" {
		t.Errorf("org_name: got %q", row.OrgName.String)
	}
}
