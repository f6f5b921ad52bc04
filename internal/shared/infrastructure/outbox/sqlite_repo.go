package outbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
)

const sqliteColumns = `id, event_id, aggregate_type, aggregate_id, routing_key, payload, metadata,
	created_at, published_at, next_retry_at, retry_count, last_error, dead_lettered_at, dead_letter_reason`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	conn database.Connection
	now  func() time.Time
}

// NewSQLiteRepository creates a new SQLite outbox repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn, now: time.Now}
}

// Save stores a new outbox message.
func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	const query = `INSERT INTO outbox (event_id, aggregate_type, aggregate_id, routing_key, payload, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`

	metadata := sql.NullString{String: string(msg.Metadata), Valid: len(msg.Metadata) > 0}
	return database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, query,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID.String(),
		msg.RoutingKey,
		string(msg.Payload),
		metadata,
		sqlite.FormatTime(msg.CreatedAt),
	).Scan(&msg.ID)
}

// SaveBatch stores messages in the ambient transaction, or a new one.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return saveBatch(ctx, r.conn, msgs, r.Save)
}

// GetUnpublished retrieves pending messages ordered by insertion.
func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	query := `SELECT ` + sqliteColumns + ` FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY id
		LIMIT ?`

	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, sqlite.FormatTime(r.now()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		msg, err := scanSQLiteMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkPublished marks a message as successfully published.
func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE outbox SET published_at = ?, dead_lettered_at = NULL WHERE id = ?`,
		sqlite.FormatTime(r.now()), id)
	return err
}

// MarkFailed records a publish failure with error message.
func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE outbox SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ? WHERE id = ?`,
		errMsg, sqlite.FormatTime(nextRetryAt), id)
	return err
}

// MarkDead marks a message as dead-lettered.
func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE outbox SET dead_lettered_at = ?, dead_letter_reason = ?, retry_count = retry_count + 1 WHERE id = ?`,
		sqlite.FormatTime(r.now()), reason, id)
	return err
}

// CountPending counts unpublished, live messages.
func (r *SQLiteRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE published_at IS NULL AND dead_lettered_at IS NULL`).Scan(&count)
	return count, err
}

// DeleteOld removes published messages older than the retention period.
func (r *SQLiteRepository) DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error) {
	result, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`,
		sqlite.FormatTime(r.now().Add(-olderThan)))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanSQLiteMessage(row database.Row) (*Message, error) {
	var (
		msg                    Message
		eventID, aggregateID   string
		payload, createdAt     string
		metadata, lastError    sql.NullString
		publishedAt, nextRetry sql.NullString
		deadAt, deadReason     sql.NullString
	)
	err := row.Scan(&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.RoutingKey, &payload, &metadata,
		&createdAt, &publishedAt, &nextRetry, &msg.RetryCount, &lastError, &deadAt, &deadReason)
	if err != nil {
		return nil, err
	}

	if msg.EventID, err = uuid.Parse(eventID); err != nil {
		return nil, err
	}
	if msg.AggregateID, err = uuid.Parse(aggregateID); err != nil {
		return nil, err
	}
	if msg.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if msg.PublishedAt, err = sqlite.ParseNullTime(publishedAt); err != nil {
		return nil, err
	}
	if msg.NextRetryAt, err = sqlite.ParseNullTime(nextRetry); err != nil {
		return nil, err
	}
	if msg.DeadLetteredAt, err = sqlite.ParseNullTime(deadAt); err != nil {
		return nil, err
	}

	msg.Payload = []byte(payload)
	if metadata.Valid {
		msg.Metadata = []byte(metadata.String)
	}
	if lastError.Valid {
		msg.LastError = &lastError.String
	}
	if deadReason.Valid {
		msg.DeadLetterReason = &deadReason.String
	}
	return &msg, nil
}

// saveBatch runs save for each message inside one transaction, joining the
// caller's if there is one.
func saveBatch(ctx context.Context, conn database.Connection, msgs []*Message, save func(context.Context, *Message) error) error {
	uow := database.NewUnitOfWork(conn)
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if err := save(txCtx, msg); err != nil {
			_ = uow.Rollback(txCtx)
			return err
		}
	}
	return uow.Commit(txCtx)
}
