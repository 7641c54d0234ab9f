package store

import (
	"context"
	"database/sql"
	"encoding/json"
)

const stripeEventColumns = `
	stripe_event_id, type, payload, status, error, received_at, processed_at`

func scanStripeEvent(row rowScanner) (StripeEvent, error) {
	var e StripeEvent
	err := row.Scan(
		&e.StripeEventID, &e.Type, &e.Payload, &e.Status, &e.Error,
		&e.ReceivedAt, &e.ProcessedAt,
	)
	return e, err
}

type InsertStripeEventParams struct {
	StripeEventID string
	Type          string
	Payload       json.RawMessage
}

// InsertStripeEvent records a webhook delivery. ON CONFLICT DO NOTHING makes
// duplicate deliveries return zero rows, which QueryRowContext surfaces as
// sql.ErrNoRows — the caller treats that as "already processed".
func (q *Queries) InsertStripeEvent(ctx context.Context, p InsertStripeEventParams) (StripeEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO stripe_events (stripe_event_id, type, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (stripe_event_id) DO NOTHING
		RETURNING`+stripeEventColumns,
		p.StripeEventID, p.Type, []byte(p.Payload),
	)
	return scanStripeEvent(row)
}

func (q *Queries) MarkStripeEventProcessed(ctx context.Context, stripeEventID string) (StripeEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE stripe_events SET status = 'processed', processed_at = now()
		WHERE stripe_event_id = $1
		RETURNING`+stripeEventColumns,
		stripeEventID,
	)
	return scanStripeEvent(row)
}

type MarkStripeEventFailedParams struct {
	StripeEventID string
	Error         sql.NullString
}

func (q *Queries) MarkStripeEventFailed(ctx context.Context, p MarkStripeEventFailedParams) (StripeEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE stripe_events SET status = 'failed', error = $2, processed_at = now()
		WHERE stripe_event_id = $1
		RETURNING`+stripeEventColumns,
		p.StripeEventID, p.Error,
	)
	return scanStripeEvent(row)
}
