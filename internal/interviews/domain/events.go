package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

const aggregateType = "Interview"

// Routing keys of the interview events.
const (
	RoutingKeyScheduled     = "interviews.interview.scheduled"
	RoutingKeyRescheduled   = "interviews.interview.rescheduled"
	RoutingKeyCancelled     = "interviews.interview.cancelled"
	RoutingKeyCompleted     = "interviews.interview.completed"
	RoutingKeyNoShow        = "interviews.interview.no_show"
	RoutingKeyFeedbackAdded = "interviews.interview.feedback_added"
)

// InterviewScheduled is emitted when an interview is first created. The
// recruitment pipeline reacts to it by moving the application forward.
type InterviewScheduled struct {
	sharedDomain.BaseEvent
	InterviewID    uuid.UUID `json:"interview_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	ApplicationID  uuid.UUID `json:"application_id"`
	Type           string    `json:"type"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}

// NewInterviewScheduled creates an InterviewScheduled event.
func NewInterviewScheduled(i *Interview) *InterviewScheduled {
	return &InterviewScheduled{
		BaseEvent:      sharedDomain.NewBaseEvent(i.ID(), aggregateType, RoutingKeyScheduled),
		InterviewID:    i.ID(),
		OrganizationID: i.OrganizationID(),
		ApplicationID:  i.ApplicationID(),
		Type:           string(i.Type()),
		ScheduledAt:    i.ScheduledAt(),
	}
}

// InterviewRescheduled is emitted when an interview moves to a new slot.
type InterviewRescheduled struct {
	sharedDomain.BaseEvent
	InterviewID     uuid.UUID `json:"interview_id"`
	ApplicationID   uuid.UUID `json:"application_id"`
	PreviousStart   time.Time `json:"previous_start"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	RescheduleCount int       `json:"reschedule_count"`
	Reason          string    `json:"reason,omitempty"`
}

// NewInterviewRescheduled creates an InterviewRescheduled event.
func NewInterviewRescheduled(i *Interview, previous time.Time, reason string) *InterviewRescheduled {
	return &InterviewRescheduled{
		BaseEvent:       sharedDomain.NewBaseEvent(i.ID(), aggregateType, RoutingKeyRescheduled),
		InterviewID:     i.ID(),
		ApplicationID:   i.ApplicationID(),
		PreviousStart:   previous,
		ScheduledAt:     i.ScheduledAt(),
		RescheduleCount: i.RescheduleCount(),
		Reason:          reason,
	}
}

// InterviewCancelled is emitted when an interview is cancelled.
type InterviewCancelled struct {
	sharedDomain.BaseEvent
	InterviewID   uuid.UUID `json:"interview_id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Reason        string    `json:"reason,omitempty"`
}

// NewInterviewCancelled creates an InterviewCancelled event.
func NewInterviewCancelled(i *Interview) *InterviewCancelled {
	return &InterviewCancelled{
		BaseEvent:     sharedDomain.NewBaseEvent(i.ID(), aggregateType, RoutingKeyCancelled),
		InterviewID:   i.ID(),
		ApplicationID: i.ApplicationID(),
		Reason:        i.CancelReason(),
	}
}

// InterviewCompleted is emitted when an interview is marked as held.
type InterviewCompleted struct {
	sharedDomain.BaseEvent
	InterviewID   uuid.UUID `json:"interview_id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Rating        *int      `json:"rating,omitempty"`
}

// NewInterviewCompleted creates an InterviewCompleted event.
func NewInterviewCompleted(i *Interview) *InterviewCompleted {
	return &InterviewCompleted{
		BaseEvent:     sharedDomain.NewBaseEvent(i.ID(), aggregateType, RoutingKeyCompleted),
		InterviewID:   i.ID(),
		ApplicationID: i.ApplicationID(),
		Rating:        i.Rating(),
	}
}

// InterviewNoShow is emitted when the candidate did not attend.
type InterviewNoShow struct {
	sharedDomain.BaseEvent
	InterviewID   uuid.UUID `json:"interview_id"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// NewInterviewNoShow creates an InterviewNoShow event.
func NewInterviewNoShow(i *Interview) *InterviewNoShow {
	return &InterviewNoShow{
		BaseEvent:     sharedDomain.NewBaseEvent(i.ID(), aggregateType, RoutingKeyNoShow),
		InterviewID:   i.ID(),
		ApplicationID: i.ApplicationID(),
	}
}

// InterviewFeedbackAdded is emitted for each feedback submission.
type InterviewFeedbackAdded struct {
	sharedDomain.BaseEvent
	InterviewID    uuid.UUID `json:"interview_id"`
	InterviewerID  uuid.UUID `json:"interviewer_id"`
	Rating         int       `json:"rating"`
	Recommendation string    `json:"recommendation"`
}

// NewInterviewFeedbackAdded creates an InterviewFeedbackAdded event.
func NewInterviewFeedbackAdded(i *Interview, f Feedback) *InterviewFeedbackAdded {
	return &InterviewFeedbackAdded{
		BaseEvent:      sharedDomain.NewBaseEvent(i.ID(), aggregateType, RoutingKeyFeedbackAdded),
		InterviewID:    i.ID(),
		InterviewerID:  f.InterviewerID,
		Rating:         f.Rating,
		Recommendation: string(f.Recommendation),
	}
}
