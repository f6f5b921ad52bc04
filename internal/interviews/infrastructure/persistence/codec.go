// Package persistence stores interviews in memory, SQLite and PostgreSQL.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	"github.com/felixgeelhaar/recruita/internal/shared/infrastructure/database"
)

// markSaved checks that the guarded upsert wrote a row and records the new
// version on the interview.
func markSaved(result database.Result, i *domain.Interview) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrentUpdate
	}
	i.MarkPersisted()
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseIDs(values []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", v, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func encodeFeedback(feedback []domain.Feedback) ([]byte, error) {
	if feedback == nil {
		feedback = []domain.Feedback{}
	}
	return json.Marshal(feedback)
}

func decodeFeedback(raw []byte) ([]domain.Feedback, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var feedback []domain.Feedback
	if err := json.Unmarshal(raw, &feedback); err != nil {
		return nil, fmt.Errorf("invalid feedback: %w", err)
	}
	return feedback, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
