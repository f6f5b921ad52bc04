package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/migrations"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.OpenInMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))
	return NewSQLiteRepository(conn)
}

func eachRepository(t *testing.T, fn func(t *testing.T, repo domain.Repository)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteRepo(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewInMemoryRepository()) })
}

func newInterview(t *testing.T, applicationID uuid.UUID, start time.Time, interviewers ...uuid.UUID) *domain.Interview {
	t.Helper()
	if len(interviewers) == 0 {
		interviewers = []uuid.UUID{uuid.New()}
	}
	i, err := domain.NewInterview(uuid.New(), applicationID, "Tech Interview", domain.TypeInPerson,
		interviewers, start, 60, "HQ", "")
	require.NoError(t, err)
	return i
}

func TestRepository_SaveAndFind(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		ctx := context.Background()
		start := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
		i := newInterview(t, uuid.New(), start)
		room := uuid.New()
		asset := uuid.New()
		i.AttachRoomBooking(room)
		i.AttachAssetBooking(asset)
		require.NoError(t, repo.Save(ctx, i))

		found, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)
		assert.Equal(t, i.OrganizationID(), found.OrganizationID())
		assert.Equal(t, i.ApplicationID(), found.ApplicationID())
		assert.Equal(t, "Tech Interview", found.Title())
		assert.Equal(t, domain.TypeInPerson, found.Type())
		assert.Equal(t, i.InterviewerIDs(), found.InterviewerIDs())
		assert.True(t, start.Equal(found.ScheduledAt()))
		assert.Equal(t, 60, found.DurationMinutes())
		assert.Equal(t, domain.StatusScheduled, found.Status())
		assert.Equal(t, "HQ", found.Location())
		assert.Empty(t, found.MeetingURL())
		require.NotNil(t, found.RoomBookingID())
		assert.Equal(t, room, *found.RoomBookingID())
		assert.Equal(t, []uuid.UUID{asset}, found.AssetBookingIDs())
		assert.Nil(t, found.Rating())
		assert.Empty(t, found.Feedback())
		assert.Empty(t, found.DomainEvents())
	})
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrInterviewNotFound)
	})
}

func TestRepository_UpdatePersistsLifecycle(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		ctx := context.Background()
		interviewer := uuid.New()
		i := newInterview(t, uuid.New(), time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), interviewer)
		i.AttachRoomBooking(uuid.New())
		require.NoError(t, repo.Save(ctx, i))

		require.NoError(t, i.Reschedule(time.Date(2024, 6, 11, 14, 0, 0, 0, time.UTC), "conflict"))
		f, err := domain.NewFeedback(interviewer, 4, domain.Hire, map[string]int{"coding": 5}, "solid")
		require.NoError(t, err)
		completed, err := i.AddFeedback(f, domain.CompleteOnAnyFeedback)
		require.NoError(t, err)
		require.True(t, completed)
		require.NoError(t, repo.Save(ctx, i))

		found, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, found.Status())
		assert.Equal(t, 1, found.RescheduleCount())
		assert.Nil(t, found.RoomBookingID())
		assert.Empty(t, found.AssetBookingIDs())

		feedback := found.Feedback()
		require.Len(t, feedback, 1)
		assert.Equal(t, interviewer, feedback[0].InterviewerID)
		assert.Equal(t, 4, feedback[0].Rating)
		assert.Equal(t, domain.Hire, feedback[0].Recommendation)
		assert.Equal(t, map[string]int{"coding": 5}, feedback[0].SectionScores)
		assert.Equal(t, "solid", feedback[0].Comments)
		assert.WithinDuration(t, f.SubmittedAt, feedback[0].SubmittedAt, time.Millisecond)
	})
}

func TestRepository_CompleteWithRating(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		ctx := context.Background()
		i := newInterview(t, uuid.New(), time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
		rating := 5
		require.NoError(t, i.Complete(&rating, "great"))
		require.NoError(t, repo.Save(ctx, i))

		found, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)
		require.NotNil(t, found.Rating())
		assert.Equal(t, 5, *found.Rating())
		assert.Equal(t, "great", found.Notes())
	})
}

func TestRepository_ListByApplication(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		ctx := context.Background()
		app := uuid.New()
		late := newInterview(t, app, time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC))
		early := newInterview(t, app, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
		other := newInterview(t, uuid.New(), time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC))
		for _, i := range []*domain.Interview{late, early, other} {
			require.NoError(t, repo.Save(ctx, i))
		}

		list, err := repo.ListByApplication(ctx, app)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, early.ID(), list[0].ID())
		assert.Equal(t, late.ID(), list[1].ID())

		none, err := repo.ListByApplication(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}

func TestInMemoryRepository_ReturnsSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	i := newInterview(t, uuid.New(), time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, i))

	loaded, err := repo.FindByID(ctx, i.ID())
	require.NoError(t, err)
	loaded.AttachRoomBooking(uuid.New())

	again, err := repo.FindByID(ctx, i.ID())
	require.NoError(t, err)
	assert.Nil(t, again.RoomBookingID())
}

func TestRepository_Save_RejectsStaleVersion(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		ctx := context.Background()
		i := newInterview(t, uuid.New(), time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, i))

		first, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)

		_, err = first.Cancel("position filled")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, first))

		require.NoError(t, second.Reschedule(time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC), "panel moved"))
		err = repo.Save(ctx, second)
		assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
		assert.ErrorIs(t, err, sharedDomain.ErrResourceConflict)

		found, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, found.Status())
		assert.Equal(t, 0, found.RescheduleCount())
	})
}

func TestRepository_Save_RepeatedSavesOfOneInterview(t *testing.T) {
	eachRepository(t, func(t *testing.T, repo domain.Repository) {
		ctx := context.Background()
		i := newInterview(t, uuid.New(), time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, i))

		i.AttachRoomBooking(uuid.New())
		require.NoError(t, repo.Save(ctx, i))
		require.NoError(t, repo.Save(ctx, i))

		found, err := repo.FindByID(ctx, i.ID())
		require.NoError(t, err)
		assert.Equal(t, i.Version(), found.Version())
		assert.NotNil(t, found.RoomBookingID())
	})
}
