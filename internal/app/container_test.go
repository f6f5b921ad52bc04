package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	bookingServices "github.com/felixgeelhaar/recruita/internal/booking/application/services"
	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
	interviewDomain "github.com/felixgeelhaar/recruita/internal/interviews/domain"
	pipelineDomain "github.com/felixgeelhaar/recruita/internal/pipeline/domain"
	resourceCommands "github.com/felixgeelhaar/recruita/internal/resources/application/commands"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/recruita/pkg/config"
	"github.com/felixgeelhaar/recruita/pkg/observability"
)

type stageMove struct {
	organizationID uuid.UUID
	applicationID  uuid.UUID
	stage          pipelineDomain.Stage
}

type recordingMover struct {
	mu    sync.Mutex
	moves []stageMove
}

func (m *recordingMover) MoveToStage(_ context.Context, organizationID, applicationID uuid.UUID, stage pipelineDomain.Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves = append(m.moves, stageMove{organizationID, applicationID, stage})
	return nil
}

func (m *recordingMover) recorded() []stageMove {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stageMove(nil), m.moves...)
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                   "test",
		DatabaseDriver:           config.DriverSQLite,
		SQLitePath:               sqlite.MemoryPath,
		LockBackend:              config.LockBackendMemory,
		LockTTL:                  time.Second,
		LockWait:                 time.Second,
		FeedbackCompletionPolicy: config.FeedbackCompletionAny,
		BookingFailurePolicy:     config.BookingFailurePartial,
		OutboxBatchSize:          50,
		OutboxMaxRetries:         3,
		OutboxRetentionDays:      14,
	}
}

type harness struct {
	c     *Container
	mover *recordingMover
	org   uuid.UUID
	room  uuid.UUID
	asset [2]uuid.UUID
}

func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	mover := &recordingMover{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewContainer(context.Background(), cfg, logger, WithStageMover(mover))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	h := &harness{c: c, mover: mover, org: uuid.New()}
	ctx := context.Background()

	room, err := c.RegisterRoomHandler.Handle(ctx, resourceCommands.RegisterRoomCommand{
		OrganizationID: h.org,
		Name:           "R1",
		Capacity:       4,
		Location:       "HQ 2nd floor",
	})
	require.NoError(t, err)
	h.room = room.RoomID

	for i, name := range []string{"Loaner laptop", "Headset"} {
		asset, err := c.RegisterAssetHandler.Handle(ctx, resourceCommands.RegisterAssetCommand{
			OrganizationID: h.org,
			Name:           name,
			Category:       "equipment",
		})
		require.NoError(t, err)
		h.asset[i] = asset.AssetID
	}
	return h
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func (h *harness) scheduleCommand(start time.Time) commands.ScheduleInterviewCommand {
	return commands.ScheduleInterviewCommand{
		OrganizationID:  h.org,
		ApplicationID:   uuid.New(),
		Title:           "Tech Interview",
		Type:            string(interviewDomain.TypeInPerson),
		InterviewerIDs:  []uuid.UUID{uuid.New()},
		ScheduledAt:     start.Format(time.RFC3339),
		DurationMinutes: 60,
		Location:        "HQ",
		ActorID:         uuid.New(),
	}
}

func (h *harness) roomAvailable(t *testing.T, start, end time.Time) bool {
	t.Helper()
	rows, err := h.c.ListAvailableRoomsHandler.Handle(context.Background(), bookingQueries.ListAvailableRoomsQuery{
		OrganizationID: h.org,
		Start:          start,
		End:            end,
		MinCapacity:    2,
	})
	require.NoError(t, err)
	for _, row := range rows {
		if row.ID == h.room {
			return row.Available
		}
	}
	t.Fatalf("room %s missing from availability listing", h.room)
	return false
}

func (h *harness) bookings(t *testing.T, interviewID uuid.UUID) []bookingQueries.BookingDTO {
	t.Helper()
	rows, err := h.c.ListBookingsForInterviewHandler.Handle(context.Background(), bookingQueries.ListBookingsForInterviewQuery{
		InterviewID: interviewID,
	})
	require.NoError(t, err)
	return rows
}

func (h *harness) book(start, end time.Time) (*bookingDomain.Booking, error) {
	window, err := bookingDomain.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	return h.c.Ledger.Book(context.Background(), bookingServices.BookRequest{
		OrganizationID: h.org,
		Resource:       bookingDomain.RoomRef(h.room),
		InterviewID:    uuid.New(),
		Window:         window,
		BookedBy:       uuid.New(),
	})
}

func TestNewContainer_WiresSQLite(t *testing.T) {
	h := newHarness(t)

	assert.NotNil(t, h.c.DBConn)
	assert.Nil(t, h.c.RedisClient)
	assert.NotNil(t, h.c.Ledger)
	assert.NotNil(t, h.c.ScheduleInterviewHandler)
	assert.NotNil(t, h.c.AddFeedbackHandler)
	assert.NotNil(t, h.c.StageSubscriber)

	report := h.c.Health.Check(context.Background())
	require.Len(t, report.Checks, 1)
	assert.Contains(t, report.Checks, "database")
	assert.Equal(t, observability.HealthStatusHealthy, report.Status)
}

func TestNewContainer_RejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.DatabaseDriver = "oracle"

	_, err := NewContainer(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestLedger_NoDoubleBooking(t *testing.T) {
	h := newHarness(t)

	first, err := h.book(at(10, 0), at(11, 0))
	require.NoError(t, err)

	_, err = h.book(at(10, 30), at(11, 30))
	require.ErrorIs(t, err, sharedDomain.ErrResourceConflict)
	assert.ErrorIs(t, err, bookingDomain.ErrResourceUnavailable)

	rows := h.bookings(t, first.InterviewID())
	require.Len(t, rows, 1)
	assert.Equal(t, string(bookingDomain.StatusActive), rows[0].Status)
}

func TestLedger_AdjacentWindowsDoNotOverlap(t *testing.T) {
	h := newHarness(t)

	_, err := h.book(at(10, 0), at(11, 0))
	require.NoError(t, err)
	_, err = h.book(at(11, 0), at(12, 0))
	require.NoError(t, err)
}

func TestScheduleInterview_EndToEnd(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cmd := h.scheduleCommand(at(10, 0))
	cmd.RoomID = &h.room
	result, err := h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NoError(t, result.PartialFailure())

	assert.Equal(t, commands.OutcomeFullyBooked, result.Outcome)
	assert.Equal(t, interviewDomain.StatusScheduled, result.Interview.Status())
	require.NotNil(t, result.Interview.RoomBookingID())

	rows := h.bookings(t, result.Interview.ID())
	require.Len(t, rows, 1)
	assert.Equal(t, h.room, rows[0].ResourceID)
	assert.True(t, rows[0].StartAt.Equal(at(10, 0)))
	assert.True(t, rows[0].EndAt.Equal(at(11, 0)))
	assert.Equal(t, string(bookingDomain.StatusActive), rows[0].Status)

	assert.False(t, h.roomAvailable(t, at(10, 0), at(11, 0)))

	stored, err := h.c.GetInterviewHandler.Handle(ctx, queries.GetInterviewQuery{InterviewID: result.Interview.ID()})
	require.NoError(t, err)
	assert.Equal(t, *result.Interview.RoomBookingID(), *stored.RoomBookingID)
}

func TestScheduleInterview_NotifiesPipelineAfterDrain(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cmd := h.scheduleCommand(at(10, 0))
	_, err := h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Empty(t, h.mover.recorded())

	require.NoError(t, h.c.DrainEvents(ctx))

	moves := h.mover.recorded()
	require.Len(t, moves, 1)
	assert.Equal(t, h.org, moves[0].organizationID)
	assert.Equal(t, cmd.ApplicationID, moves[0].applicationID)
	assert.Equal(t, pipelineDomain.StageInterview, moves[0].stage)

	require.NoError(t, h.c.DrainEvents(ctx))
	assert.Len(t, h.mover.recorded(), 1)
}

func TestScheduleInterview_PartialFailureKeepsInterview(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.book(at(10, 0), at(11, 0))
	require.NoError(t, err)

	cmd := h.scheduleCommand(at(10, 30))
	cmd.RoomID = &h.room
	result, err := h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, commands.OutcomePartiallyBooked, result.Outcome)
	require.Len(t, result.Failures, 1)
	assert.ErrorIs(t, result.PartialFailure(), sharedDomain.ErrPartialFailure)

	stored, err := h.c.GetInterviewHandler.Handle(ctx, queries.GetInterviewQuery{InterviewID: result.Interview.ID()})
	require.NoError(t, err)
	assert.Nil(t, stored.RoomBookingID)
}

func TestScheduleInterview_AbortPolicyPersistsNothing(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.BookingFailurePolicy = config.BookingFailureAbort
	})
	ctx := context.Background()

	_, err := h.book(at(10, 0), at(11, 0))
	require.NoError(t, err)

	cmd := h.scheduleCommand(at(10, 0))
	cmd.RoomID = &h.room
	cmd.AssetIDs = []uuid.UUID{h.asset[0]}
	_, err = h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.ErrorIs(t, err, sharedDomain.ErrResourceConflict)

	listed, err := h.c.ListInterviewsForApplicationHandler.Handle(ctx, queries.ListInterviewsForApplicationQuery{
		ApplicationID: cmd.ApplicationID,
	})
	require.NoError(t, err)
	assert.Empty(t, listed)

	assets, err := h.c.ListAvailableAssetsHandler.Handle(ctx, bookingQueries.ListAvailableAssetsQuery{
		OrganizationID: h.org,
		Start:          at(10, 0),
		End:            at(11, 0),
	})
	require.NoError(t, err)
	for _, a := range assets {
		assert.True(t, a.Available, "asset %s should have been released", a.Name)
	}
}

func TestRescheduleInterview_ReleasesPriorRoom(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cmd := h.scheduleCommand(at(10, 0))
	cmd.RoomID = &h.room
	scheduled, err := h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.NoError(t, err)

	result, err := h.c.RescheduleInterviewHandler.Handle(ctx, commands.RescheduleInterviewCommand{
		InterviewID: scheduled.Interview.ID(),
		NewStart:    at(14, 0).Format(time.RFC3339),
		Reason:      "candidate travel",
		RoomID:      &h.room,
	})
	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeFullyBooked, result.Outcome)
	assert.Equal(t, interviewDomain.StatusRescheduled, result.Interview.Status())

	assert.True(t, h.roomAvailable(t, at(10, 0), at(11, 0)))
	assert.False(t, h.roomAvailable(t, at(14, 0), at(15, 0)))

	rows := h.bookings(t, scheduled.Interview.ID())
	require.Len(t, rows, 2)
	statuses := map[string]int{}
	for _, row := range rows {
		statuses[row.Status]++
	}
	assert.Equal(t, map[string]int{"active": 1, "cancelled": 1}, statuses)
}

func TestCancelInterview_CascadesAndIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cmd := h.scheduleCommand(at(10, 0))
	cmd.RoomID = &h.room
	cmd.AssetIDs = h.asset[:]
	scheduled, err := h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, h.bookings(t, scheduled.Interview.ID()), 3)

	cancel := commands.CancelInterviewCommand{InterviewID: scheduled.Interview.ID(), Reason: "position filled"}
	cancelled, err := h.c.CancelInterviewHandler.Handle(ctx, cancel)
	require.NoError(t, err)
	assert.Equal(t, interviewDomain.StatusCancelled, cancelled.Status())

	rows := h.bookings(t, scheduled.Interview.ID())
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, string(bookingDomain.StatusCancelled), row.Status)
	}
	assert.True(t, h.roomAvailable(t, at(10, 0), at(11, 0)))

	again, err := h.c.CancelInterviewHandler.Handle(ctx, cancel)
	require.NoError(t, err)
	assert.Equal(t, interviewDomain.StatusCancelled, again.Status())
	assert.Len(t, h.bookings(t, scheduled.Interview.ID()), 3)
}

func TestCompleteInterview_RejectsCancelled(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	scheduled, err := h.c.ScheduleInterviewHandler.Handle(ctx, h.scheduleCommand(at(10, 0)))
	require.NoError(t, err)
	_, err = h.c.CancelInterviewHandler.Handle(ctx, commands.CancelInterviewCommand{InterviewID: scheduled.Interview.ID()})
	require.NoError(t, err)

	_, err = h.c.CompleteInterviewHandler.Handle(ctx, commands.CompleteInterviewCommand{InterviewID: scheduled.Interview.ID()})
	require.ErrorIs(t, err, sharedDomain.ErrInvalidTransition)
}

func TestAddFeedback_AllPolicyWaitsForEveryInterviewer(t *testing.T) {
	h := newHarness(t, func(cfg *config.Config) {
		cfg.FeedbackCompletionPolicy = config.FeedbackCompletionAll
	})
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	cmd := h.scheduleCommand(at(10, 0))
	cmd.InterviewerIDs = []uuid.UUID{first, second}
	scheduled, err := h.c.ScheduleInterviewHandler.Handle(ctx, cmd)
	require.NoError(t, err)

	feedback := func(interviewer uuid.UUID) *commands.AddFeedbackResult {
		res, err := h.c.AddFeedbackHandler.Handle(ctx, commands.AddFeedbackCommand{
			InterviewID:    scheduled.Interview.ID(),
			InterviewerID:  interviewer,
			Rating:         4,
			Recommendation: string(interviewDomain.Hire),
		})
		require.NoError(t, err)
		return res
	}

	assert.False(t, feedback(first).Completed)
	res := feedback(second)
	assert.True(t, res.Completed)
	assert.Equal(t, interviewDomain.StatusCompleted, res.Interview.Status())

	stored, err := h.c.GetInterviewHandler.Handle(ctx, queries.GetInterviewQuery{InterviewID: scheduled.Interview.ID()})
	require.NoError(t, err)
	assert.Len(t, stored.Feedback, 2)
}
