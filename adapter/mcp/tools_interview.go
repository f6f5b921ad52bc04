package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
)

type interviewScheduleInput struct {
	ApplicationID   string   `json:"application_id" jsonschema:"required"`
	Title           string   `json:"title" jsonschema:"required"`
	Type            string   `json:"type" jsonschema:"required"`
	InterviewerIDs  []string `json:"interviewer_ids" jsonschema:"required"`
	ScheduledAt     string   `json:"scheduled_at" jsonschema:"required"`
	DurationMinutes int      `json:"duration_minutes" jsonschema:"required"`
	Location        string   `json:"location,omitempty"`
	MeetingURL      string   `json:"meeting_url,omitempty"`
	RoomID          string   `json:"room_id,omitempty"`
	AssetIDs        []string `json:"asset_ids,omitempty"`
}

type interviewRescheduleInput struct {
	InterviewID string   `json:"interview_id" jsonschema:"required"`
	NewStart    string   `json:"new_start" jsonschema:"required"`
	Reason      string   `json:"reason,omitempty"`
	RoomID      string   `json:"room_id,omitempty"`
	AssetIDs    []string `json:"asset_ids,omitempty"`
}

type interviewCancelInput struct {
	InterviewID string `json:"interview_id" jsonschema:"required"`
	Reason      string `json:"reason,omitempty"`
}

type interviewCompleteInput struct {
	InterviewID string `json:"interview_id" jsonschema:"required"`
	Rating      int    `json:"rating,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type interviewFeedbackInput struct {
	InterviewID    string         `json:"interview_id" jsonschema:"required"`
	InterviewerID  string         `json:"interviewer_id" jsonschema:"required"`
	Rating         int            `json:"rating" jsonschema:"required"`
	Recommendation string         `json:"recommendation" jsonschema:"required"`
	SectionScores  map[string]int `json:"section_scores,omitempty"`
	Comments       string         `json:"comments,omitempty"`
}

type interviewIDInput struct {
	InterviewID string `json:"interview_id" jsonschema:"required"`
}

type feedbackOutput struct {
	Interview queries.InterviewDTO `json:"interview"`
	Completed bool                 `json:"completed"`
}

func registerInterviewTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("interview.schedule").
		Description("Schedule an interview, optionally booking a room and assets. Failed bookings are reported without undoing the interview").
		Handler(func(ctx context.Context, input interviewScheduleInput) (*bookingOutput, error) {
			if app == nil || app.ScheduleInterviewHandler == nil {
				return nil, fmt.Errorf("interview scheduling %w", errNoDatabase)
			}
			applicationID, err := parseUUID(input.ApplicationID)
			if err != nil {
				return nil, err
			}
			interviewers, err := parseUUIDs(input.InterviewerIDs)
			if err != nil {
				return nil, err
			}
			roomID, err := parseOptionalUUID(input.RoomID)
			if err != nil {
				return nil, err
			}
			assetIDs, err := parseUUIDs(input.AssetIDs)
			if err != nil {
				return nil, err
			}

			result, err := app.ScheduleInterviewHandler.Handle(ctx, commands.ScheduleInterviewCommand{
				OrganizationID:  app.OrganizationID,
				ApplicationID:   applicationID,
				Title:           input.Title,
				Type:            input.Type,
				InterviewerIDs:  interviewers,
				ScheduledAt:     input.ScheduledAt,
				DurationMinutes: input.DurationMinutes,
				Location:        input.Location,
				MeetingURL:      input.MeetingURL,
				RoomID:          roomID,
				AssetIDs:        assetIDs,
				ActorID:         app.ActorID,
			})
			if err != nil {
				return nil, err
			}
			return newBookingOutput(result.Interview, result.Outcome, result.Failures), nil
		})

	srv.Tool("interview.reschedule").
		Description("Move an interview to a new start time. Existing bookings are released and the given resources are booked for the new slot").
		Handler(func(ctx context.Context, input interviewRescheduleInput) (*bookingOutput, error) {
			if app == nil || app.RescheduleInterviewHandler == nil {
				return nil, fmt.Errorf("interview rescheduling %w", errNoDatabase)
			}
			interviewID, err := parseUUID(input.InterviewID)
			if err != nil {
				return nil, err
			}
			roomID, err := parseOptionalUUID(input.RoomID)
			if err != nil {
				return nil, err
			}
			assetIDs, err := parseUUIDs(input.AssetIDs)
			if err != nil {
				return nil, err
			}

			result, err := app.RescheduleInterviewHandler.Handle(ctx, commands.RescheduleInterviewCommand{
				InterviewID: interviewID,
				NewStart:    input.NewStart,
				Reason:      input.Reason,
				RoomID:      roomID,
				AssetIDs:    assetIDs,
				ActorID:     app.ActorID,
			})
			if err != nil {
				return nil, err
			}
			return newBookingOutput(result.Interview, result.Outcome, result.Failures), nil
		})

	srv.Tool("interview.cancel").
		Description("Cancel an interview and release its bookings").
		Handler(func(ctx context.Context, input interviewCancelInput) (*queries.InterviewDTO, error) {
			if app == nil || app.CancelInterviewHandler == nil {
				return nil, fmt.Errorf("interview cancellation %w", errNoDatabase)
			}
			interviewID, err := parseUUID(input.InterviewID)
			if err != nil {
				return nil, err
			}

			interview, err := app.CancelInterviewHandler.Handle(ctx, commands.CancelInterviewCommand{
				InterviewID: interviewID,
				Reason:      input.Reason,
				ActorID:     app.ActorID,
			})
			if err != nil {
				return nil, err
			}
			dto := queries.ToInterviewDTO(interview)
			return &dto, nil
		})

	srv.Tool("interview.complete").
		Description("Mark an interview as held, with an optional 1-5 rating").
		Handler(func(ctx context.Context, input interviewCompleteInput) (*queries.InterviewDTO, error) {
			if app == nil || app.CompleteInterviewHandler == nil {
				return nil, fmt.Errorf("interview completion %w", errNoDatabase)
			}
			interviewID, err := parseUUID(input.InterviewID)
			if err != nil {
				return nil, err
			}

			cmd := commands.CompleteInterviewCommand{
				InterviewID: interviewID,
				Notes:       input.Notes,
				ActorID:     app.ActorID,
			}
			if input.Rating != 0 {
				rating := input.Rating
				cmd.Rating = &rating
			}

			interview, err := app.CompleteInterviewHandler.Handle(ctx, cmd)
			if err != nil {
				return nil, err
			}
			dto := queries.ToInterviewDTO(interview)
			return &dto, nil
		})

	srv.Tool("interview.no_show").
		Description("Record that the candidate did not attend").
		Handler(func(ctx context.Context, input interviewIDInput) (*queries.InterviewDTO, error) {
			if app == nil || app.RecordNoShowHandler == nil {
				return nil, fmt.Errorf("no-show recording %w", errNoDatabase)
			}
			interviewID, err := parseUUID(input.InterviewID)
			if err != nil {
				return nil, err
			}

			interview, err := app.RecordNoShowHandler.Handle(ctx, commands.RecordNoShowCommand{
				InterviewID: interviewID,
				ActorID:     app.ActorID,
			})
			if err != nil {
				return nil, err
			}
			dto := queries.ToInterviewDTO(interview)
			return &dto, nil
		})

	srv.Tool("interview.feedback").
		Description("Submit one interviewer's rating, recommendation (strong_hire, hire, no_hire, strong_no_hire) and section scores").
		Handler(func(ctx context.Context, input interviewFeedbackInput) (*feedbackOutput, error) {
			if app == nil || app.AddFeedbackHandler == nil {
				return nil, fmt.Errorf("feedback submission %w", errNoDatabase)
			}
			interviewID, err := parseUUID(input.InterviewID)
			if err != nil {
				return nil, err
			}
			interviewerID, err := parseUUID(input.InterviewerID)
			if err != nil {
				return nil, err
			}
			if input.Recommendation == "" {
				return nil, errors.New("recommendation is required")
			}

			result, err := app.AddFeedbackHandler.Handle(ctx, commands.AddFeedbackCommand{
				InterviewID:    interviewID,
				InterviewerID:  interviewerID,
				Rating:         input.Rating,
				Recommendation: input.Recommendation,
				SectionScores:  input.SectionScores,
				Comments:       input.Comments,
			})
			if err != nil {
				return nil, err
			}
			return &feedbackOutput{
				Interview: queries.ToInterviewDTO(result.Interview),
				Completed: result.Completed,
			}, nil
		})

	srv.Tool("interview.get").
		Description("Get an interview with its bookings and feedback").
		Handler(func(ctx context.Context, input interviewIDInput) (*queries.InterviewDTO, error) {
			if app == nil || app.GetInterviewHandler == nil {
				return nil, fmt.Errorf("interview lookup %w", errNoDatabase)
			}
			interviewID, err := parseUUID(input.InterviewID)
			if err != nil {
				return nil, err
			}
			return app.GetInterviewHandler.Handle(ctx, queries.GetInterviewQuery{InterviewID: interviewID})
		})

	return nil
}
