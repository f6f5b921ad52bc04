package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

var tenAM = time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

func newTestInterview(t *testing.T, interviewers ...uuid.UUID) *Interview {
	t.Helper()
	if len(interviewers) == 0 {
		interviewers = []uuid.UUID{uuid.New()}
	}
	i, err := NewInterview(uuid.New(), uuid.New(), "Tech Interview", TypeInPerson, interviewers, tenAM, 60, "HQ", "")
	require.NoError(t, err)
	i.ClearDomainEvents()
	return i
}

func TestNewInterview(t *testing.T) {
	orgID, appID := uuid.New(), uuid.New()
	interviewer := uuid.New()

	i, err := NewInterview(orgID, appID, "  Tech Interview ", TypeInPerson, []uuid.UUID{interviewer, interviewer}, tenAM, 60, "", "")
	require.NoError(t, err)

	assert.Equal(t, "Tech Interview", i.Title())
	assert.Equal(t, StatusScheduled, i.Status())
	assert.Equal(t, []uuid.UUID{interviewer}, i.InterviewerIDs())
	assert.Equal(t, tenAM.Add(time.Hour), i.EndsAt())
	assert.Equal(t, 0, i.RescheduleCount())
	assert.True(t, i.NeedsResources())

	events := i.DomainEvents()
	require.Len(t, events, 1)
	scheduled, ok := events[0].(*InterviewScheduled)
	require.True(t, ok)
	assert.Equal(t, RoutingKeyScheduled, scheduled.RoutingKey())
	assert.Equal(t, appID, scheduled.ApplicationID)
	assert.Equal(t, orgID, scheduled.OrganizationID)
	assert.Equal(t, "in_person", scheduled.Type)
}

func TestNewInterview_Validation(t *testing.T) {
	org, app, who := uuid.New(), uuid.New(), []uuid.UUID{uuid.New()}

	tests := []struct {
		name     string
		build    func() (*Interview, error)
		expected error
	}{
		{"empty title", func() (*Interview, error) {
			return NewInterview(org, app, " ", TypePhone, who, tenAM, 30, "", "")
		}, ErrEmptyTitle},
		{"zero duration", func() (*Interview, error) {
			return NewInterview(org, app, "Screen", TypePhone, who, tenAM, 0, "", "")
		}, ErrInvalidDuration},
		{"no interviewers", func() (*Interview, error) {
			return NewInterview(org, app, "Screen", TypePhone, nil, tenAM, 30, "", "")
		}, ErrNoInterviewers},
		{"missing time", func() (*Interview, error) {
			return NewInterview(org, app, "Screen", TypePhone, who, time.Time{}, 30, "", "")
		}, ErrMissingSchedule},
		{"bad type", func() (*Interview, error) {
			return NewInterview(org, app, "Screen", "lunch", who, tenAM, 30, "", "")
		}, ErrInvalidType},
		{"missing application", func() (*Interview, error) {
			return NewInterview(org, uuid.Nil, "Screen", TypePhone, who, tenAM, 30, "", "")
		}, ErrMissingApplication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := tt.build()
			assert.Nil(t, i)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, sharedDomain.ErrValidation)
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	active := []Status{StatusScheduled, StatusRescheduled}
	terminal := []Status{StatusCancelled, StatusCompleted, StatusNoShow}
	targets := []Status{StatusRescheduled, StatusCancelled, StatusCompleted, StatusNoShow}

	for _, from := range active {
		for _, to := range targets {
			assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		assert.False(t, from.CanTransitionTo(StatusScheduled), "scheduled is only an initial state")
	}
	for _, from := range terminal {
		assert.True(t, from.IsTerminal())
		for _, to := range targets {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestInterview_Reschedule(t *testing.T) {
	i := newTestInterview(t)
	i.AttachRoomBooking(uuid.New())
	i.AttachAssetBooking(uuid.New())

	require.NoError(t, i.Reschedule(tenAM.Add(4*time.Hour), "panel conflict"))
	assert.Equal(t, StatusRescheduled, i.Status())
	assert.Equal(t, 1, i.RescheduleCount())
	assert.Nil(t, i.RoomBookingID())
	assert.Empty(t, i.AssetBookingIDs())

	require.NoError(t, i.Reschedule(tenAM.Add(24*time.Hour), ""))
	assert.Equal(t, 2, i.RescheduleCount())

	events := i.DomainEvents()
	require.Len(t, events, 2)
	moved := events[0].(*InterviewRescheduled)
	assert.Equal(t, tenAM, moved.PreviousStart)
	assert.Equal(t, "panel conflict", moved.Reason)
	assert.Equal(t, 1, moved.RescheduleCount)
}

func TestInterview_Reschedule_TerminalIsNotFound(t *testing.T) {
	i := newTestInterview(t)
	_, err := i.Cancel("")
	require.NoError(t, err)

	err = i.Reschedule(tenAM.Add(time.Hour), "")
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidTransition)
	assert.Equal(t, 0, i.RescheduleCount())
}

func TestInterview_Cancel(t *testing.T) {
	i := newTestInterview(t)

	changed, err := i.Cancel("candidate withdrew")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusCancelled, i.Status())
	assert.Equal(t, "candidate withdrew", i.CancelReason())

	changed, err = i.Cancel("again")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "candidate withdrew", i.CancelReason())
	assert.Len(t, i.DomainEvents(), 1)

	done := newTestInterview(t)
	require.NoError(t, done.Complete(nil, ""))
	_, err = done.Cancel("")
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidTransition)
}

func TestInterview_Complete(t *testing.T) {
	i := newTestInterview(t)
	bad := 6
	assert.ErrorIs(t, i.Complete(&bad, ""), ErrInvalidRating)
	assert.Equal(t, StatusScheduled, i.Status())

	rating := 4
	require.NoError(t, i.Complete(&rating, "strong systems answers"))
	assert.Equal(t, StatusCompleted, i.Status())
	require.NotNil(t, i.Rating())
	assert.Equal(t, 4, *i.Rating())
	assert.Equal(t, "strong systems answers", i.Notes())

	assert.ErrorIs(t, i.Complete(nil, ""), ErrInvalidTransition)
	assert.ErrorIs(t, i.MarkNoShow(), ErrInvalidTransition)
}

func TestInterview_Complete_AfterCancelRejected(t *testing.T) {
	i := newTestInterview(t)
	_, err := i.Cancel("")
	require.NoError(t, err)

	err = i.Complete(nil, "")
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidTransition)
	assert.Equal(t, StatusCancelled, i.Status())
}

func TestInterview_MarkNoShow(t *testing.T) {
	i := newTestInterview(t)
	require.NoError(t, i.Reschedule(tenAM.Add(time.Hour), ""))
	require.NoError(t, i.MarkNoShow())
	assert.Equal(t, StatusNoShow, i.Status())

	_, err := i.Cancel("")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func feedbackFrom(t *testing.T, interviewer uuid.UUID) Feedback {
	t.Helper()
	f, err := NewFeedback(interviewer, 4, Hire, map[string]int{"coding": 4, " ": 1}, "solid")
	require.NoError(t, err)
	return f
}

func TestNewFeedback(t *testing.T) {
	f := feedbackFrom(t, uuid.New())
	assert.Equal(t, map[string]int{"coding": 4}, f.SectionScores)

	_, err := NewFeedback(uuid.New(), 0, Hire, nil, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, err = NewFeedback(uuid.New(), 3, "maybe", nil, "")
	assert.ErrorIs(t, err, ErrInvalidRecommend)
	_, err = NewFeedback(uuid.New(), 3, NoHire, map[string]int{"design": 9}, "")
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestInterview_AddFeedback_AnyPolicy(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	i := newTestInterview(t, a, b)

	completed, err := i.AddFeedback(feedbackFrom(t, a), CompleteOnAnyFeedback)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, StatusCompleted, i.Status())

	completed, err = i.AddFeedback(feedbackFrom(t, b), CompleteOnAnyFeedback)
	require.NoError(t, err)
	assert.False(t, completed, "late feedback on a completed interview does not transition")
	assert.Len(t, i.Feedback(), 2)

	_, err = i.AddFeedback(feedbackFrom(t, b), CompleteOnAnyFeedback)
	assert.ErrorIs(t, err, ErrDuplicateFeedback)
}

func TestInterview_AddFeedback_AllPolicy(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	i := newTestInterview(t, a, b)

	completed, err := i.AddFeedback(feedbackFrom(t, a), CompleteOnAllFeedback)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, StatusScheduled, i.Status())

	completed, err = i.AddFeedback(feedbackFrom(t, b), CompleteOnAllFeedback)
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, StatusCompleted, i.Status())
}

func TestInterview_AddFeedback_Rejections(t *testing.T) {
	a := uuid.New()

	i := newTestInterview(t, a)
	_, err := i.AddFeedback(feedbackFrom(t, uuid.New()), CompleteOnAnyFeedback)
	assert.ErrorIs(t, err, ErrNotAnInterviewer)

	_, err = i.Cancel("")
	require.NoError(t, err)
	_, err = i.AddFeedback(feedbackFrom(t, a), CompleteOnAnyFeedback)
	assert.ErrorIs(t, err, ErrFeedbackNotAccepted)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidTransition)

	noShow := newTestInterview(t, a)
	require.NoError(t, noShow.MarkNoShow())
	_, err = noShow.AddFeedback(feedbackFrom(t, a), CompleteOnAnyFeedback)
	assert.ErrorIs(t, err, ErrFeedbackNotAccepted)
}

func TestInterview_FeedbackIsCopied(t *testing.T) {
	a := uuid.New()
	i := newTestInterview(t, a)
	_, err := i.AddFeedback(feedbackFrom(t, a), CompleteOnAnyFeedback)
	require.NoError(t, err)

	entries := i.Feedback()
	entries[0].SectionScores["coding"] = 1
	assert.Equal(t, 4, i.Feedback()[0].SectionScores["coding"])
}
