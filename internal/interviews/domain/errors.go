package domain

import sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"

var (
	ErrInterviewNotFound   = sharedDomain.NewError(sharedDomain.KindNotFound, "interview not found")
	ErrEmptyTitle          = sharedDomain.NewError(sharedDomain.KindValidation, "title cannot be empty")
	ErrInvalidType         = sharedDomain.NewError(sharedDomain.KindValidation, "invalid interview type")
	ErrInvalidDuration     = sharedDomain.NewError(sharedDomain.KindValidation, "duration must be positive")
	ErrNoInterviewers      = sharedDomain.NewError(sharedDomain.KindValidation, "at least one interviewer is required")
	ErrMissingSchedule     = sharedDomain.NewError(sharedDomain.KindValidation, "scheduled_at is required")
	ErrMissingOrgID        = sharedDomain.NewError(sharedDomain.KindValidation, "organization id is required")
	ErrMissingApplication  = sharedDomain.NewError(sharedDomain.KindValidation, "application id is required")
	ErrInvalidRating       = sharedDomain.NewError(sharedDomain.KindValidation, "rating must be between 1 and 5")
	ErrInvalidScore        = sharedDomain.NewError(sharedDomain.KindValidation, "section scores must be between 1 and 5")
	ErrInvalidRecommend    = sharedDomain.NewError(sharedDomain.KindValidation, "invalid hire recommendation")
	ErrInvalidStatus       = sharedDomain.NewError(sharedDomain.KindValidation, "invalid interview status")
	ErrNotAnInterviewer    = sharedDomain.NewError(sharedDomain.KindValidation, "feedback author is not an interviewer of this interview")
	ErrDuplicateFeedback   = sharedDomain.NewError(sharedDomain.KindValidation, "interviewer has already submitted feedback")
	ErrInvalidTransition   = sharedDomain.NewError(sharedDomain.KindInvalidTransition, "interview status does not allow this change")
	ErrInterviewNotActive  = sharedDomain.Wrap(sharedDomain.KindNotFound, "no active interview with this id", ErrInvalidTransition)
	ErrFeedbackNotAccepted = sharedDomain.NewError(sharedDomain.KindInvalidTransition, "feedback is not accepted for cancelled or no-show interviews")
	ErrConcurrentUpdate    = sharedDomain.NewError(sharedDomain.KindResourceConflict, "interview was changed by another request")
)
