package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// Interview is one sitting between a candidate's application and a panel of
// interviewers.
type Interview struct {
	sharedDomain.BaseAggregateRoot
	organizationID  uuid.UUID
	applicationID   uuid.UUID
	title           string
	interviewType   InterviewType
	interviewerIDs  []uuid.UUID
	scheduledAt     time.Time
	durationMinutes int
	status          Status
	location        string
	meetingURL      string
	roomBookingID   *uuid.UUID
	assetBookingIDs []uuid.UUID
	rescheduleCount int
	feedback        []Feedback
	rating          *int
	notes           string
	cancelReason    string
}

// NewInterview creates a scheduled interview and records InterviewScheduled.
func NewInterview(
	organizationID uuid.UUID,
	applicationID uuid.UUID,
	title string,
	interviewType InterviewType,
	interviewerIDs []uuid.UUID,
	scheduledAt time.Time,
	durationMinutes int,
	location string,
	meetingURL string,
) (*Interview, error) {
	if organizationID == uuid.Nil {
		return nil, ErrMissingOrgID
	}
	if applicationID == uuid.Nil {
		return nil, ErrMissingApplication
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !interviewType.IsValid() {
		return nil, ErrInvalidType
	}
	if scheduledAt.IsZero() {
		return nil, ErrMissingSchedule
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	interviewers := uniqueIDs(interviewerIDs)
	if len(interviewers) == 0 {
		return nil, ErrNoInterviewers
	}

	i := &Interview{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		organizationID:    organizationID,
		applicationID:     applicationID,
		title:             title,
		interviewType:     interviewType,
		interviewerIDs:    interviewers,
		scheduledAt:       scheduledAt.UTC(),
		durationMinutes:   durationMinutes,
		status:            StatusScheduled,
		location:          strings.TrimSpace(location),
		meetingURL:        strings.TrimSpace(meetingURL),
	}
	i.AddDomainEvent(NewInterviewScheduled(i))
	return i, nil
}

func (i *Interview) OrganizationID() uuid.UUID    { return i.organizationID }
func (i *Interview) ApplicationID() uuid.UUID     { return i.applicationID }
func (i *Interview) Title() string                { return i.title }
func (i *Interview) Type() InterviewType          { return i.interviewType }
func (i *Interview) InterviewerIDs() []uuid.UUID  { return slices.Clone(i.interviewerIDs) }
func (i *Interview) ScheduledAt() time.Time       { return i.scheduledAt }
func (i *Interview) DurationMinutes() int         { return i.durationMinutes }
func (i *Interview) Status() Status               { return i.status }
func (i *Interview) Location() string             { return i.location }
func (i *Interview) MeetingURL() string           { return i.meetingURL }
func (i *Interview) RoomBookingID() *uuid.UUID    { return i.roomBookingID }
func (i *Interview) AssetBookingIDs() []uuid.UUID { return slices.Clone(i.assetBookingIDs) }
func (i *Interview) RescheduleCount() int         { return i.rescheduleCount }
func (i *Interview) Rating() *int                 { return i.rating }
func (i *Interview) Notes() string                { return i.notes }
func (i *Interview) CancelReason() string         { return i.cancelReason }

// Feedback returns a copy of the submitted feedback entries.
func (i *Interview) Feedback() []Feedback {
	out := make([]Feedback, len(i.feedback))
	for n, f := range i.feedback {
		out[n] = f.clone()
	}
	return out
}

// EndsAt is the end of the interview slot.
func (i *Interview) EndsAt() time.Time {
	return i.scheduledAt.Add(i.Duration())
}

// Duration is the length of the interview slot.
func (i *Interview) Duration() time.Duration {
	return time.Duration(i.durationMinutes) * time.Minute
}

// NeedsResources reports whether the interview can hold room or asset
// bookings. Only in-person interviews do.
func (i *Interview) NeedsResources() bool {
	return i.interviewType == TypeInPerson
}

// HasInterviewer reports whether id is assigned to the interview.
func (i *Interview) HasInterviewer(id uuid.UUID) bool {
	return slices.Contains(i.interviewerIDs, id)
}

// AttachRoomBooking records the room reservation held for this sitting.
func (i *Interview) AttachRoomBooking(bookingID uuid.UUID) {
	i.roomBookingID = &bookingID
	i.IncrementVersion()
}

// AttachAssetBooking records an asset reservation held for this sitting.
func (i *Interview) AttachAssetBooking(bookingID uuid.UUID) {
	if slices.Contains(i.assetBookingIDs, bookingID) {
		return
	}
	i.assetBookingIDs = append(i.assetBookingIDs, bookingID)
	i.IncrementVersion()
}

// Reschedule moves the interview to newStart. The caller must have released
// the interview's bookings first; the references are cleared here.
func (i *Interview) Reschedule(newStart time.Time, reason string) error {
	if i.status.IsTerminal() {
		return ErrInterviewNotActive
	}
	if newStart.IsZero() {
		return ErrMissingSchedule
	}

	previous := i.scheduledAt
	i.scheduledAt = newStart.UTC()
	i.status = StatusRescheduled
	i.rescheduleCount++
	i.roomBookingID = nil
	i.assetBookingIDs = nil
	i.AddDomainEvent(NewInterviewRescheduled(i, previous, strings.TrimSpace(reason)))
	return nil
}

// Cancel ends the sitting. Cancelling an already cancelled interview is a
// no-op and reports false; completed and no-show interviews cannot be
// cancelled.
func (i *Interview) Cancel(reason string) (bool, error) {
	if i.status == StatusCancelled {
		return false, nil
	}
	if !i.status.CanTransitionTo(StatusCancelled) {
		return false, ErrInvalidTransition
	}

	i.status = StatusCancelled
	i.cancelReason = strings.TrimSpace(reason)
	i.AddDomainEvent(NewInterviewCancelled(i))
	return true, nil
}

// Complete marks the interview as held, with an optional overall rating.
// Bookings are kept as the record of the resources it used.
func (i *Interview) Complete(rating *int, notes string) error {
	if !i.status.CanTransitionTo(StatusCompleted) {
		return ErrInvalidTransition
	}
	if rating != nil {
		if err := validRating(*rating); err != nil {
			return err
		}
		r := *rating
		i.rating = &r
	}

	i.status = StatusCompleted
	if notes = strings.TrimSpace(notes); notes != "" {
		i.notes = notes
	}
	i.AddDomainEvent(NewInterviewCompleted(i))
	return nil
}

// MarkNoShow records that the candidate did not attend.
func (i *Interview) MarkNoShow() error {
	if !i.status.CanTransitionTo(StatusNoShow) {
		return ErrInvalidTransition
	}
	i.status = StatusNoShow
	i.AddDomainEvent(NewInterviewNoShow(i))
	return nil
}

// AddFeedback appends an interviewer's feedback. Feedback is accepted on
// active and completed interviews. When policy is satisfied an active
// interview completes, and AddFeedback reports true.
func (i *Interview) AddFeedback(f Feedback, policy CompletionPolicy) (bool, error) {
	if i.status == StatusCancelled || i.status == StatusNoShow {
		return false, ErrFeedbackNotAccepted
	}
	if !i.HasInterviewer(f.InterviewerID) {
		return false, ErrNotAnInterviewer
	}
	if i.hasFeedbackFrom(f.InterviewerID) {
		return false, ErrDuplicateFeedback
	}

	i.feedback = append(i.feedback, f.clone())
	i.AddDomainEvent(NewInterviewFeedbackAdded(i, f))

	if i.status.IsTerminal() || !i.feedbackComplete(policy) {
		return false, nil
	}
	i.status = StatusCompleted
	i.AddDomainEvent(NewInterviewCompleted(i))
	return true, nil
}

func (i *Interview) hasFeedbackFrom(interviewerID uuid.UUID) bool {
	return slices.ContainsFunc(i.feedback, func(f Feedback) bool { return f.InterviewerID == interviewerID })
}

func (i *Interview) feedbackComplete(policy CompletionPolicy) bool {
	if policy != CompleteOnAllFeedback {
		return len(i.feedback) > 0
	}
	for _, id := range i.interviewerIDs {
		if !i.hasFeedbackFrom(id) {
			return false
		}
	}
	return true
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// RehydrateInterview recreates an interview from persisted state.
func RehydrateInterview(
	id uuid.UUID,
	organizationID uuid.UUID,
	applicationID uuid.UUID,
	title string,
	interviewType InterviewType,
	interviewerIDs []uuid.UUID,
	scheduledAt time.Time,
	durationMinutes int,
	status Status,
	location string,
	meetingURL string,
	roomBookingID *uuid.UUID,
	assetBookingIDs []uuid.UUID,
	rescheduleCount int,
	feedback []Feedback,
	rating *int,
	notes string,
	cancelReason string,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) *Interview {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Interview{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version),
		organizationID:    organizationID,
		applicationID:     applicationID,
		title:             title,
		interviewType:     interviewType,
		interviewerIDs:    interviewerIDs,
		scheduledAt:       scheduledAt.UTC(),
		durationMinutes:   durationMinutes,
		status:            status,
		location:          location,
		meetingURL:        meetingURL,
		roomBookingID:     roomBookingID,
		assetBookingIDs:   assetBookingIDs,
		rescheduleCount:   rescheduleCount,
		feedback:          feedback,
		rating:            rating,
		notes:             notes,
		cancelReason:      cancelReason,
	}
}
