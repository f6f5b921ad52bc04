package mcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

var errNoDatabase = errors.New("requires database connection")

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func parseOptionalUUID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseUUID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := parseUUID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseWindow(start string, durationMinutes int) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start, use RFC 3339 such as 2024-06-10T10:00:00Z: %w", err)
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}
	return from, from.Add(time.Duration(durationMinutes) * time.Minute), nil
}

type bookingFailureOutput struct {
	ResourceKind string    `json:"resource_kind"`
	ResourceID   uuid.UUID `json:"resource_id"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}

// bookingOutput reports an interview together with how its bookings went.
// A partially booked interview is a successful call.
type bookingOutput struct {
	Interview      queries.InterviewDTO   `json:"interview"`
	BookingOutcome string                 `json:"booking_outcome"`
	Failures       []bookingFailureOutput `json:"failures"`
}

func newBookingOutput(interview *domain.Interview, outcome commands.BookingOutcome, failures []commands.BookingFailure) *bookingOutput {
	out := &bookingOutput{
		Interview:      queries.ToInterviewDTO(interview),
		BookingOutcome: string(outcome),
		Failures:       make([]bookingFailureOutput, 0, len(failures)),
	}
	for _, f := range failures {
		code := "internal_error"
		if kind, ok := sharedDomain.KindOf(f.Err); ok {
			code = string(kind)
		}
		out.Failures = append(out.Failures, bookingFailureOutput{
			ResourceKind: string(f.Kind),
			ResourceID:   f.ResourceID,
			Code:         code,
			Message:      f.Err.Error(),
		})
	}
	return out
}
