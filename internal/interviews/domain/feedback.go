package domain

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recommendation is an interviewer's hiring verdict.
type Recommendation string

const (
	StrongHire   Recommendation = "strong_hire"
	Hire         Recommendation = "hire"
	NoHire       Recommendation = "no_hire"
	StrongNoHire Recommendation = "strong_no_hire"
)

func (r Recommendation) IsValid() bool {
	switch r {
	case StrongHire, Hire, NoHire, StrongNoHire:
		return true
	}
	return false
}

// Feedback is one interviewer's assessment.
type Feedback struct {
	InterviewerID  uuid.UUID      `json:"interviewer_id"`
	Rating         int            `json:"rating"`
	Recommendation Recommendation `json:"recommendation"`
	SectionScores  map[string]int `json:"section_scores,omitempty"`
	Comments       string         `json:"comments,omitempty"`
	SubmittedAt    time.Time      `json:"submitted_at"`
}

// NewFeedback validates and creates a feedback entry.
func NewFeedback(interviewerID uuid.UUID, rating int, recommendation Recommendation, sectionScores map[string]int, comments string) (Feedback, error) {
	if err := validRating(rating); err != nil {
		return Feedback{}, err
	}
	if !recommendation.IsValid() {
		return Feedback{}, ErrInvalidRecommend
	}

	scores := make(map[string]int, len(sectionScores))
	for section, score := range sectionScores {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if score < 1 || score > 5 {
			return Feedback{}, ErrInvalidScore
		}
		scores[section] = score
	}

	return Feedback{
		InterviewerID:  interviewerID,
		Rating:         rating,
		Recommendation: recommendation,
		SectionScores:  scores,
		Comments:       strings.TrimSpace(comments),
		SubmittedAt:    time.Now().UTC(),
	}, nil
}

func (f Feedback) clone() Feedback {
	f.SectionScores = maps.Clone(f.SectionScores)
	return f
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
