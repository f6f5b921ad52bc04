package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/application/services"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// BookingOutcome tells a fully booked interview apart from one that is
// missing a requested resource.
type BookingOutcome string

const (
	OutcomeNotRequested    BookingOutcome = "not_requested"
	OutcomeFullyBooked     BookingOutcome = "fully_booked"
	OutcomePartiallyBooked BookingOutcome = "partially_booked"
)

// BookingFailure is one requested resource that could not be booked.
type BookingFailure = services.BookingFailure

// BookingFailurePolicy decides what a failed booking does to a new
// interview.
type BookingFailurePolicy string

const (
	// KeepOnBookingFailure schedules the interview without the resource.
	KeepOnBookingFailure BookingFailurePolicy = "partial"
	// AbortOnBookingFailure releases what was booked and schedules nothing.
	AbortOnBookingFailure BookingFailurePolicy = "abort"
)

func (p BookingFailurePolicy) IsValid() bool {
	return p == KeepOnBookingFailure || p == AbortOnBookingFailure
}

// PartialFailure reports an interview that was saved while some of its
// requested bookings were not.
type PartialFailure struct {
	InterviewID uuid.UUID
	Failures    []BookingFailure
}

func (e *PartialFailure) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("interview %s saved but %d booking(s) failed: %s", e.InterviewID, len(e.Failures), strings.Join(parts, "; "))
}

func (e *PartialFailure) ErrorKind() sharedDomain.ErrorKind { return sharedDomain.KindPartialFailure }

func (e *PartialFailure) Is(target error) bool { return target == sharedDomain.ErrPartialFailure }

func (e *PartialFailure) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// ScheduleInterviewResult is the saved interview and how its bookings went.
type ScheduleInterviewResult struct {
	Interview *domain.Interview
	Outcome   BookingOutcome
	Failures  []BookingFailure
}

// PartialFailure returns a *PartialFailure when a requested booking failed.
func (r *ScheduleInterviewResult) PartialFailure() error {
	return partialFailure(r.Interview, r.Failures)
}

// RescheduleInterviewResult is the moved interview and how its new
// bookings went.
type RescheduleInterviewResult struct {
	Interview *domain.Interview
	Outcome   BookingOutcome
	Failures  []BookingFailure
}

// PartialFailure returns a *PartialFailure when a requested booking failed.
func (r *RescheduleInterviewResult) PartialFailure() error {
	return partialFailure(r.Interview, r.Failures)
}

// AddFeedbackResult is the updated interview and whether the submission
// completed it.
type AddFeedbackResult struct {
	Interview *domain.Interview
	Completed bool
}

func partialFailure(interview *domain.Interview, failures []BookingFailure) error {
	if len(failures) == 0 {
		return nil
	}
	return &PartialFailure{InterviewID: interview.ID(), Failures: failures}
}

func outcomeOf(res services.Reservation) BookingOutcome {
	switch {
	case res.Requested == 0:
		return OutcomeNotRequested
	case len(res.Failures) == 0:
		return OutcomeFullyBooked
	default:
		return OutcomePartiallyBooked
	}
}

// AsPartialFailure extracts a *PartialFailure from err.
func AsPartialFailure(err error) (*PartialFailure, bool) {
	var pf *PartialFailure
	ok := errors.As(err, &pf)
	return pf, ok
}
