package outbox

import (
	"context"
	"time"
)

// Repository persists outbox messages. Save and SaveBatch join the
// transaction on the context so events commit with the aggregate.
type Repository interface {
	Save(ctx context.Context, msg *Message) error
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns messages that are neither published nor dead and
	// whose retry time has come, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	MarkPublished(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error
	MarkDead(ctx context.Context, id int64, reason string) error

	// CountPending reports the backlog for the outbox gauge.
	CountPending(ctx context.Context) (int64, error)

	// DeleteOld removes published messages older than the retention period.
	DeleteOld(ctx context.Context, olderThan time.Duration) (int64, error)
}
