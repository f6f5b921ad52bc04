package domain

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists interviews. FindByID returns ErrInterviewNotFound for
// unknown ids.
type Repository interface {
	Save(ctx context.Context, interview *Interview) error
	FindByID(ctx context.Context, id uuid.UUID) (*Interview, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*Interview, error)
}
