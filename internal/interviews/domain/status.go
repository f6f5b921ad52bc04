package domain

import "slices"

// InterviewType is the format of an interview.
type InterviewType string

const (
	TypePhone     InterviewType = "phone"
	TypeVideo     InterviewType = "video"
	TypeInPerson  InterviewType = "in_person"
	TypeTechnical InterviewType = "technical"
	TypePanel     InterviewType = "panel"
)

// InterviewTypes lists every valid type.
var InterviewTypes = []InterviewType{TypePhone, TypeVideo, TypeInPerson, TypeTechnical, TypePanel}

func (t InterviewType) IsValid() bool {
	return slices.Contains(InterviewTypes, t)
}

// Status is the lifecycle state of an interview.
type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCancelled   Status = "cancelled"
	StatusCompleted   Status = "completed"
	StatusNoShow      Status = "no_show"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> next. A
// rescheduled interview behaves exactly like a scheduled one.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusRescheduled, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// CompletionPolicy decides when feedback completes an interview.
type CompletionPolicy string

const (
	// CompleteOnAnyFeedback completes on the first submission.
	CompleteOnAnyFeedback CompletionPolicy = "any"
	// CompleteOnAllFeedback waits for every assigned interviewer.
	CompleteOnAllFeedback CompletionPolicy = "all"
)

func (p CompletionPolicy) IsValid() bool {
	return p == CompleteOnAnyFeedback || p == CompleteOnAllFeedback
}
