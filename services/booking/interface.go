package booking

import (
	"context"

	"recoveryoffice/models"
)

// SubmissionService runs the two-phase commit against the backend API:
// create the client record, then the booking record.
type SubmissionService interface {
	Submit(ctx context.Context, sessionID string) (*models.SubmissionResult, error)
}

// State is the orchestrator's position in the submission state machine.
// Exposed for logging and tests; the machine never runs two submissions
// concurrently for the same draft.
type State string

const (
	StateIdle              State = "idle"
	StateSubmittingClient  State = "submitting_client"
	StateSubmittingBooking State = "submitting_booking"
	StateSucceeded         State = "succeeded"
	StateFailed            State = "failed"
)
