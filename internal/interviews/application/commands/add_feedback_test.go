package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

func feedbackFrom(interviewID, interviewerID uuid.UUID) AddFeedbackCommand {
	return AddFeedbackCommand{
		InterviewID:    interviewID,
		InterviewerID:  interviewerID,
		Rating:         4,
		Recommendation: string(domain.Hire),
		SectionScores:  map[string]int{"coding": 4, "communication": 5},
		Comments:       "clear thinker",
	}
}

func TestAddFeedbackHandler_AnyFeedbackCompletes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := uuid.New(), uuid.New()
	interview := f.schedule(t, "2024-06-10T10:00:00Z", alice, bob)

	result, err := f.feedbackHandler(domain.CompleteOnAnyFeedback).Handle(ctx, feedbackFrom(interview.ID(), alice))
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, domain.StatusCompleted, result.Interview.Status())
	require.Len(t, result.Interview.Feedback(), 1)
	assert.Equal(t, 5, result.Interview.Feedback()[0].SectionScores["communication"])

	late, err := f.feedbackHandler(domain.CompleteOnAnyFeedback).Handle(ctx, feedbackFrom(interview.ID(), bob))
	require.NoError(t, err)
	assert.False(t, late.Completed)
	assert.Len(t, late.Interview.Feedback(), 2)
	assert.Len(t, f.activeBookings(interview.ID()), 3)
}

func TestAddFeedbackHandler_AllFeedbackPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob := uuid.New(), uuid.New()
	interview := f.schedule(t, "2024-06-10T10:00:00Z", alice, bob)
	handler := f.feedbackHandler(domain.CompleteOnAllFeedback)

	first, err := handler.Handle(ctx, feedbackFrom(interview.ID(), alice))
	require.NoError(t, err)
	assert.False(t, first.Completed)
	assert.Equal(t, domain.StatusScheduled, first.Interview.Status())

	second, err := handler.Handle(ctx, feedbackFrom(interview.ID(), bob))
	require.NoError(t, err)
	assert.True(t, second.Completed)
	assert.Equal(t, domain.StatusCompleted, second.Interview.Status())
}

func TestAddFeedbackHandler_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := uuid.New()
	interview := f.schedule(t, "2024-06-10T10:00:00Z", alice)
	handler := f.feedbackHandler(domain.CompleteOnAllFeedback)

	_, err := handler.Handle(ctx, feedbackFrom(interview.ID(), uuid.New()))
	assert.ErrorIs(t, err, domain.ErrNotAnInterviewer)

	_, err = handler.Handle(ctx, feedbackFrom(uuid.New(), alice))
	assert.ErrorIs(t, err, sharedDomain.ErrNotFound)

	bad := feedbackFrom(interview.ID(), alice)
	bad.Rating = 0
	_, err = handler.Handle(ctx, bad)
	assert.ErrorIs(t, err, sharedDomain.ErrValidation)

	bad = feedbackFrom(interview.ID(), alice)
	bad.Recommendation = "maybe"
	_, err = handler.Handle(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidRecommend)

	_, err = handler.Handle(ctx, feedbackFrom(interview.ID(), alice))
	require.NoError(t, err)
	_, err = handler.Handle(ctx, feedbackFrom(interview.ID(), alice))
	assert.ErrorIs(t, err, domain.ErrDuplicateFeedback)
}

func TestAddFeedbackHandler_CancelledInterview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := uuid.New()
	interview := f.schedule(t, "2024-06-10T10:00:00Z", alice)
	_, err := f.cancelHandler().Handle(ctx, CancelInterviewCommand{InterviewID: interview.ID()})
	require.NoError(t, err)

	_, err = f.feedbackHandler(domain.CompleteOnAnyFeedback).Handle(ctx, feedbackFrom(interview.ID(), alice))
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidTransition)
}
