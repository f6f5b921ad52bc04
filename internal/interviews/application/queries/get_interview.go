package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
)

// GetInterviewQuery loads one interview.
type GetInterviewQuery struct {
	InterviewID uuid.UUID
}

// GetInterviewHandler handles the GetInterviewQuery.
type GetInterviewHandler struct {
	repo domain.Repository
}

// NewGetInterviewHandler creates a new GetInterviewHandler.
func NewGetInterviewHandler(repo domain.Repository) *GetInterviewHandler {
	return &GetInterviewHandler{repo: repo}
}

// Handle executes the GetInterviewQuery.
func (h *GetInterviewHandler) Handle(ctx context.Context, query GetInterviewQuery) (*InterviewDTO, error) {
	interview, err := h.repo.FindByID(ctx, query.InterviewID)
	if err != nil {
		return nil, err
	}
	dto := ToInterviewDTO(interview)
	return &dto, nil
}

// ListInterviewsForApplicationQuery lists an application's interviews.
type ListInterviewsForApplicationQuery struct {
	ApplicationID uuid.UUID
	// Status, when set, keeps only interviews in that status.
	Status string
}

// ListInterviewsForApplicationHandler handles the ListInterviewsForApplicationQuery.
type ListInterviewsForApplicationHandler struct {
	repo domain.Repository
}

// NewListInterviewsForApplicationHandler creates a new ListInterviewsForApplicationHandler.
func NewListInterviewsForApplicationHandler(repo domain.Repository) *ListInterviewsForApplicationHandler {
	return &ListInterviewsForApplicationHandler{repo: repo}
}

// Handle executes the ListInterviewsForApplicationQuery.
func (h *ListInterviewsForApplicationHandler) Handle(ctx context.Context, query ListInterviewsForApplicationQuery) ([]InterviewDTO, error) {
	if query.Status != "" && !domain.Status(query.Status).IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	interviews, err := h.repo.ListByApplication(ctx, query.ApplicationID)
	if err != nil {
		return nil, err
	}

	dtos := make([]InterviewDTO, 0, len(interviews))
	for _, interview := range interviews {
		if query.Status != "" && string(interview.Status()) != query.Status {
			continue
		}
		dtos = append(dtos, ToInterviewDTO(interview))
	}
	return dtos, nil
}
