package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
)

type txKey struct{}

type mockInterviewRepo struct {
	mock.Mock
}

func (m *mockInterviewRepo) Save(ctx context.Context, interview *domain.Interview) error {
	args := m.Called(ctx, interview)
	return args.Error(0)
}

func (m *mockInterviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *mockInterviewRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Interview, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Interview), args.Error(1)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
