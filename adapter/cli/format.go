package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/felixgeelhaar/recruita/internal/booking/domain"
	interviewCommands "github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	interviewQueries "github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
)

// ErrNotInitialized is returned when a command runs without a database.
var ErrNotInitialized = errors.New("command requires a database connection; check DATABASE_DRIVER and SQLITE_PATH")

// RequireApp returns the global app or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

// ParseID parses a UUID argument, naming it in the error.
func ParseID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return id, nil
}

// ParseOptionalID parses a UUID flag that may be empty.
func ParseOptionalID(name, value string) (*uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	id, err := ParseID(name, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseIDs parses a list of UUID flags.
func ParseIDs(name string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := ParseID(name, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseTime parses an RFC 3339 timestamp flag.
func ParseTime(name, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected RFC 3339, e.g. 2024-06-10T10:00:00Z", name, value)
	}
	return t, nil
}

// PrintInterview writes a human-readable summary of an interview.
func PrintInterview(w io.Writer, i interviewQueries.InterviewDTO) {
	fmt.Fprintf(w, "%s\n", i.Title)
	fmt.Fprintf(w, "  ID: %s\n", i.ID)
	fmt.Fprintf(w, "  Application: %s\n", i.ApplicationID)
	fmt.Fprintf(w, "  Type: %s\n", i.Type)
	fmt.Fprintf(w, "  Status: %s\n", i.Status)
	fmt.Fprintf(w, "  When: %s - %s (%d mins)\n",
		i.ScheduledAt.Format(time.RFC3339), i.EndsAt.Format("15:04"), i.DurationMinutes)
	if i.Location != "" {
		fmt.Fprintf(w, "  Location: %s\n", i.Location)
	}
	if i.MeetingURL != "" {
		fmt.Fprintf(w, "  Meeting URL: %s\n", i.MeetingURL)
	}
	if i.RoomBookingID != nil {
		fmt.Fprintf(w, "  Room booking: %s\n", *i.RoomBookingID)
	}
	for _, id := range i.AssetBookingIDs {
		fmt.Fprintf(w, "  Asset booking: %s\n", id)
	}
	if i.RescheduleCount > 0 {
		fmt.Fprintf(w, "  Rescheduled: %d time(s)\n", i.RescheduleCount)
	}
	if i.CancelReason != "" {
		fmt.Fprintf(w, "  Cancel reason: %s\n", i.CancelReason)
	}
	if i.Rating != nil {
		fmt.Fprintf(w, "  Rating: %d/5\n", *i.Rating)
	}
	for _, f := range i.Feedback {
		fmt.Fprintf(w, "  Feedback from %s: %d/5 %s\n", f.InterviewerID, f.Rating, f.Recommendation)
	}
}

// PrintBookingOutcome reports how the requested bookings went. Each failed
// resource gets its own "scheduled but ... unbooked" line.
func PrintBookingOutcome(w io.Writer, outcome interviewCommands.BookingOutcome, failures []interviewCommands.BookingFailure) {
	switch outcome {
	case interviewCommands.OutcomeNotRequested:
		return
	case interviewCommands.OutcomeFullyBooked:
		fmt.Fprintln(w, "All requested resources booked.")
		return
	}
	for _, f := range failures {
		noun := "room"
		if f.Kind == bookingDomain.KindAsset {
			noun = "asset"
		}
		fmt.Fprintf(w, "Warning: scheduled but %s unbooked (%s): %v\n", noun, f.ResourceID, f.Err)
	}
}
