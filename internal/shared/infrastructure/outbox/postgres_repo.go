package outbox

import (
	"context"
	"time"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

const postgresColumns = `id, event_id, aggregate_type, aggregate_id, routing_key, payload, metadata,
	created_at, published_at, next_retry_at, retry_count, last_error, dead_lettered_at, dead_letter_reason`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	conn database.Connection
}

// NewPostgresRepository creates a new PostgreSQL outbox repository.
func NewPostgresRepository(conn database.Connection) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

// Save stores a new outbox message.
func (r *PostgresRepository) Save(ctx context.Context, msg *Message) error {
	const query = `
		INSERT INTO outbox (event_id, aggregate_type, aggregate_id, routing_key, payload, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var metadata []byte
	if len(msg.Metadata) > 0 {
		metadata = msg.Metadata
	}
	return database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, query,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.RoutingKey,
		[]byte(msg.Payload),
		metadata,
		msg.CreatedAt,
	).Scan(&msg.ID)
}

// SaveBatch stores messages in the ambient transaction, or a new one.
func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return saveBatch(ctx, r.conn, msgs, r.Save)
}

// GetUnpublished retrieves pending messages ordered by insertion.
func (r *PostgresRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	query := `
		SELECT ` + postgresColumns + `
		FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY id
		LIMIT $1
	`

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var (
			msg      Message
			payload  []byte
			metadata []byte
		)
		err := rows.Scan(
			&msg.ID,
			&msg.EventID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.RoutingKey,
			&payload,
			&metadata,
			&msg.CreatedAt,
			&msg.PublishedAt,
			&msg.NextRetryAt,
			&msg.RetryCount,
			&msg.LastError,
			&msg.DeadLetteredAt,
			&msg.DeadLetterReason,
		)
		if err != nil {
			return nil, err
		}
		msg.Payload = payload
		msg.Metadata = metadata
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

// MarkPublished marks a message as successfully published.
func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE outbox SET published_at = NOW(), dead_lettered_at = NULL WHERE id = $1`, id)
	return err
}

// MarkFailed records a publish failure with error message.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	const query = `
		UPDATE outbox
		SET retry_count = retry_count + 1,
			last_error = $2,
			next_retry_at = $3
		WHERE id = $1
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query, id, errMsg, nextRetryAt)
	return err
}

// MarkDead marks a message as dead-lettered.
func (r *PostgresRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	const query = `
		UPDATE outbox
		SET dead_lettered_at = NOW(),
			dead_letter_reason = $2,
			retry_count = retry_count + 1
		WHERE id = $1
	`
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, query, id, reason)
	return err
}

// CountPending counts unpublished, live messages.
func (r *PostgresRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE published_at IS NULL AND dead_lettered_at IS NULL`).Scan(&count)
	return count, err
}

// DeleteOld removes published messages older than the retention period.
func (r *PostgresRepository) DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error) {
	result, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < $1`,
		time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
