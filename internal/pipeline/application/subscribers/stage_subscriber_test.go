package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	interviewDomain "github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/pipeline/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

type mockStageMover struct {
	mock.Mock
}

func (m *mockStageMover) MoveToStage(ctx context.Context, organizationID, applicationID uuid.UUID, stage domain.Stage) error {
	args := m.Called(ctx, organizationID, applicationID, stage)
	return args.Error(0)
}

func scheduledEnvelope(t *testing.T) (*eventbus.Envelope, *interviewDomain.Interview) {
	t.Helper()
	interview, err := interviewDomain.NewInterview(uuid.New(), uuid.New(), "Onsite", interviewDomain.TypeInPerson,
		[]uuid.UUID{uuid.New()}, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), 60, "", "")
	require.NoError(t, err)
	events := interview.DomainEvents()
	require.Len(t, events, 1)
	env, err := eventbus.EnvelopeFor(events[0])
	require.NoError(t, err)
	return env, interview
}

func TestStageSubscriber_EventTypes(t *testing.T) {
	s := NewStageSubscriber(nil, nil, nil)
	assert.Equal(t, []string{interviewDomain.RoutingKeyScheduled}, s.EventTypes())
}

func TestStageSubscriber_MovesApplication(t *testing.T) {
	ctx := context.Background()
	mover := new(mockStageMover)
	metrics := observability.NewInMemoryMetrics()
	env, interview := scheduledEnvelope(t)
	mover.On("MoveToStage", ctx, interview.OrganizationID(), interview.ApplicationID(), domain.StageInterview).Return(nil)

	err := NewStageSubscriber(mover, metrics, nil).Handle(ctx, env)
	require.NoError(t, err)
	mover.AssertExpectations(t)
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricEventsConsumed, observability.T("routing_key", interviewDomain.RoutingKeyScheduled)))
}

func TestStageSubscriber_ReturnsMoverError(t *testing.T) {
	ctx := context.Background()
	mover := new(mockStageMover)
	env, _ := scheduledEnvelope(t)
	moveErr := errors.New("pipeline down")
	mover.On("MoveToStage", ctx, mock.Anything, mock.Anything, domain.StageInterview).Return(moveErr)

	err := NewStageSubscriber(mover, nil, nil).Handle(ctx, env)
	assert.ErrorIs(t, err, moveErr)
}

func TestStageSubscriber_IgnoresOtherEvents(t *testing.T) {
	mover := new(mockStageMover)
	env := &eventbus.Envelope{RoutingKey: interviewDomain.RoutingKeyCancelled, Payload: json.RawMessage(`{}`)}

	require.NoError(t, NewStageSubscriber(mover, nil, nil).Handle(context.Background(), env))
	mover.AssertNotCalled(t, "MoveToStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStageSubscriber_DropsMalformedPayload(t *testing.T) {
	mover := new(mockStageMover)
	s := NewStageSubscriber(mover, nil, nil)

	bad := &eventbus.Envelope{RoutingKey: interviewDomain.RoutingKeyScheduled, Payload: json.RawMessage(`{"application_id": 7}`)}
	require.NoError(t, s.Handle(context.Background(), bad))

	empty := &eventbus.Envelope{RoutingKey: interviewDomain.RoutingKeyScheduled, Payload: json.RawMessage(`{}`)}
	require.NoError(t, s.Handle(context.Background(), empty))

	mover.AssertNotCalled(t, "MoveToStage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogStageMover(t *testing.T) {
	assert.NoError(t, NewLogStageMover(nil).MoveToStage(context.Background(), uuid.New(), uuid.New(), domain.StageInterview))
}
