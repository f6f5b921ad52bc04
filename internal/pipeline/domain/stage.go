// Package domain describes the one thing the scheduling core asks of the
// recruitment pipeline: move an application to a stage.
package domain

import (
	"context"

	"github.com/google/uuid"
)

// Stage is a recruitment pipeline stage.
type Stage string

// StageInterview is where an application goes once an interview exists.
const StageInterview Stage = "interview"

// StageMover moves an application to a stage. Moving an application to the
// stage it is already in must succeed.
type StageMover interface {
	MoveToStage(ctx context.Context, organizationID, applicationID uuid.UUID, stage Stage) error
}
