package queries

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
)

// FeedbackDTO is one interviewer's submitted assessment.
type FeedbackDTO struct {
	InterviewerID  uuid.UUID      `json:"interviewer_id"`
	Rating         int            `json:"rating"`
	Recommendation string         `json:"recommendation"`
	SectionScores  map[string]int `json:"section_scores,omitempty"`
	Comments       string         `json:"comments,omitempty"`
	SubmittedAt    time.Time      `json:"submitted_at"`
}

// InterviewDTO is the read model of an interview.
type InterviewDTO struct {
	ID              uuid.UUID     `json:"id"`
	OrganizationID  uuid.UUID     `json:"organization_id"`
	ApplicationID   uuid.UUID     `json:"application_id"`
	Title           string        `json:"title"`
	Type            string        `json:"type"`
	InterviewerIDs  []uuid.UUID   `json:"interviewer_ids"`
	ScheduledAt     time.Time     `json:"scheduled_at"`
	EndsAt          time.Time     `json:"ends_at"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          string        `json:"status"`
	Location        string        `json:"location,omitempty"`
	MeetingURL      string        `json:"meeting_url,omitempty"`
	RoomBookingID   *uuid.UUID    `json:"room_booking_id,omitempty"`
	AssetBookingIDs []uuid.UUID   `json:"asset_booking_ids"`
	RescheduleCount int           `json:"reschedule_count"`
	Rating          *int          `json:"rating,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CancelReason    string        `json:"cancel_reason,omitempty"`
	Feedback        []FeedbackDTO `json:"feedback"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ToInterviewDTO maps an interview to its read model. Lists are never nil.
func ToInterviewDTO(i *domain.Interview) InterviewDTO {
	assets := i.AssetBookingIDs()
	if assets == nil {
		assets = []uuid.UUID{}
	}
	feedback := make([]FeedbackDTO, 0, len(i.Feedback()))
	for _, f := range i.Feedback() {
		feedback = append(feedback, FeedbackDTO{
			InterviewerID:  f.InterviewerID,
			Rating:         f.Rating,
			Recommendation: string(f.Recommendation),
			SectionScores:  f.SectionScores,
			Comments:       f.Comments,
			SubmittedAt:    f.SubmittedAt,
		})
	}

	return InterviewDTO{
		ID:              i.ID(),
		OrganizationID:  i.OrganizationID(),
		ApplicationID:   i.ApplicationID(),
		Title:           i.Title(),
		Type:            string(i.Type()),
		InterviewerIDs:  i.InterviewerIDs(),
		ScheduledAt:     i.ScheduledAt(),
		EndsAt:          i.EndsAt(),
		DurationMinutes: i.DurationMinutes(),
		Status:          string(i.Status()),
		Location:        i.Location(),
		MeetingURL:      i.MeetingURL(),
		RoomBookingID:   i.RoomBookingID(),
		AssetBookingIDs: assets,
		RescheduleCount: i.RescheduleCount(),
		Rating:          i.Rating(),
		Notes:           i.Notes(),
		CancelReason:    i.CancelReason(),
		Feedback:        feedback,
		CreatedAt:       i.CreatedAt(),
		UpdatedAt:       i.UpdatedAt(),
	}
}
