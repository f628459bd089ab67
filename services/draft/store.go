// Package draft owns the in-progress booking aggregate. Every wizard
// surface mutates the same draft through the store's named setters; the
// store is the single writer and all consumers observe the latest value.
package draft

import (
	"context"
	"fmt"

	"recoveryoffice/models"
)

// Store is the single source of truth for booking drafts. Mutation is
// last-writer-wins; the wizard is user-driven and never has two competing
// writers outside the submission window, which is guarded explicitly.
type Store interface {
	// Create mints a new empty draft at step 1 with a fresh session ID.
	Create(ctx context.Context) (*models.Draft, error)
	// Get returns the current draft for the session.
	Get(ctx context.Context, sessionID string) (*models.Draft, error)

	SetSelectedService(ctx context.Context, sessionID string, service models.ServiceCatalogEntry) (*models.Draft, error)
	SetSelectedDate(ctx context.Context, sessionID string, date string) (*models.Draft, error)
	SetSelectedTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.Draft, error)
	SetClientInfo(ctx context.Context, sessionID string, info models.ClientInfo) (*models.Draft, error)
	SetAvailableServices(ctx context.Context, sessionID string, services []models.ServiceCatalogEntry) (*models.Draft, error)
	SetCurrentStep(ctx context.Context, sessionID string, step int) (*models.Draft, error)

	// Reset restores the draft to its initial empty state, bumps the
	// generation and mints a fresh idempotency key.
	Reset(ctx context.Context, sessionID string) (*models.Draft, error)

	// BeginSubmission locks the draft read-only and returns the snapshot the
	// orchestrator must submit.
	BeginSubmission(ctx context.Context, sessionID string) (*models.Draft, error)
	// CompleteSubmission unlocks the draft. When success is true the draft is
	// reset; a stale generation is discarded without touching the draft.
	CompleteSubmission(ctx context.Context, sessionID string, generation int64, success bool) error
}

// ErrNotFound means the session has no draft (expired or never created).
var ErrNotFound = fmt.Errorf("booking draft not found or expired")

// ErrDraftLocked means a submission is in flight and the draft is
// read-only until it reaches a terminal state.
var ErrDraftLocked = fmt.Errorf("booking draft is locked during submission")

// StepError reports an attempt to advance past the populated fields.
type StepError struct {
	Requested int
	Allowed   int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cannot move to step %d: only step %d is reachable with the current draft", e.Requested, e.Allowed)
}

// applyStep enforces the step invariant shared by both implementations:
// the step never exceeds 1 + populated prior fields and stays in range.
func applyStep(d *models.Draft, step int) error {
	if step < models.StepService || step > models.StepMax {
		return &StepError{Requested: step, Allowed: d.MaxStep()}
	}
	if max := d.MaxStep(); step > max {
		return &StepError{Requested: step, Allowed: max}
	}
	d.CurrentStep = step
	return nil
}
