package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recoveryoffice/models"
)

var canonicalService = models.ServiceCatalogEntry{
	ID:   "6830bb99da51afb0a6180bee",
	Name: "Recovery Consultation",
}

func newDraft(t *testing.T, s Store) *models.Draft {
	t.Helper()
	d, err := s.Create(context.Background())
	require.NoError(t, err)
	return d
}

func TestCreateStartsEmptyAtStepOne(t *testing.T) {
	s := NewMemoryStore()
	d := newDraft(t, s)

	assert.NotEmpty(t, d.SessionID)
	assert.NotEmpty(t, d.IdempotencyKey)
	assert.Equal(t, models.StepService, d.CurrentStep)
	assert.Nil(t, d.SelectedService)
	assert.Nil(t, d.ClientInfo)
	assert.False(t, d.Submitting)
}

func TestGetUnknownSession(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettersAreVisibleToEveryReader(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)

	_, err := s.SetSelectedService(ctx, d.SessionID, canonicalService)
	require.NoError(t, err)
	_, err = s.SetSelectedDate(ctx, d.SessionID, "2026-09-15")
	require.NoError(t, err)

	// A second surface attaching to the same session sees the latest value.
	fresh, err := s.Get(ctx, d.SessionID)
	require.NoError(t, err)
	require.NotNil(t, fresh.SelectedService)
	assert.Equal(t, canonicalService.ID, fresh.SelectedService.ID)
	assert.Equal(t, "2026-09-15", fresh.SelectedDate)
}

func TestStepInvariant(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)

	// Step 3 is unreachable before service, date and slot are populated.
	_, err := s.SetCurrentStep(ctx, d.SessionID, models.StepClientInfo)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, models.StepService, stepErr.Allowed)

	_, err = s.SetSelectedService(ctx, d.SessionID, canonicalService)
	require.NoError(t, err)
	_, err = s.SetCurrentStep(ctx, d.SessionID, models.StepSchedule)
	assert.NoError(t, err)

	// Still no date/slot, so step 3 stays unreachable.
	_, err = s.SetCurrentStep(ctx, d.SessionID, models.StepClientInfo)
	assert.Error(t, err)

	_, err = s.SetSelectedDate(ctx, d.SessionID, "2026-09-15")
	require.NoError(t, err)
	_, err = s.SetSelectedTimeSlot(ctx, d.SessionID, models.TimeSlot{ID: "slot-1", StartTime: "10:00", EndTime: "11:00", Available: true})
	require.NoError(t, err)
	_, err = s.SetCurrentStep(ctx, d.SessionID, models.StepClientInfo)
	assert.NoError(t, err)

	// Backward moves are always legal within range.
	_, err = s.SetCurrentStep(ctx, d.SessionID, models.StepService)
	assert.NoError(t, err)

	_, err = s.SetCurrentStep(ctx, d.SessionID, 9)
	assert.Error(t, err)
}

func TestResetRestoresInitialDraft(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)
	originalKey := d.IdempotencyKey

	_, err := s.SetSelectedService(ctx, d.SessionID, canonicalService)
	require.NoError(t, err)
	_, err = s.SetSelectedDate(ctx, d.SessionID, "2026-09-15")
	require.NoError(t, err)

	reset, err := s.Reset(ctx, d.SessionID)
	require.NoError(t, err)

	assert.Nil(t, reset.SelectedService)
	assert.Empty(t, reset.SelectedDate)
	assert.Nil(t, reset.SelectedTimeSlot)
	assert.Nil(t, reset.ClientInfo)
	assert.Equal(t, models.StepService, reset.CurrentStep)
	assert.Equal(t, d.Generation+1, reset.Generation)
	assert.NotEqual(t, originalKey, reset.IdempotencyKey)

	// Reset is idempotent with respect to the draft contents.
	again, err := s.Reset(ctx, d.SessionID)
	require.NoError(t, err)
	assert.Nil(t, again.SelectedService)
	assert.Equal(t, models.StepService, again.CurrentStep)
}

func TestSubmissionLockRejectsMutators(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)

	_, err := s.BeginSubmission(ctx, d.SessionID)
	require.NoError(t, err)

	_, err = s.SetSelectedDate(ctx, d.SessionID, "2026-09-16")
	assert.ErrorIs(t, err, ErrDraftLocked)

	_, err = s.BeginSubmission(ctx, d.SessionID)
	assert.ErrorIs(t, err, ErrDraftLocked)

	// Failure unlocks but keeps the draft contents.
	require.NoError(t, s.CompleteSubmission(ctx, d.SessionID, d.Generation, false))
	_, err = s.SetSelectedDate(ctx, d.SessionID, "2026-09-16")
	assert.NoError(t, err)
}

func TestCompleteSubmissionSuccessResetsDraft(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)

	_, err := s.SetSelectedService(ctx, d.SessionID, canonicalService)
	require.NoError(t, err)
	snapshot, err := s.BeginSubmission(ctx, d.SessionID)
	require.NoError(t, err)

	require.NoError(t, s.CompleteSubmission(ctx, d.SessionID, snapshot.Generation, true))

	fresh, err := s.Get(ctx, d.SessionID)
	require.NoError(t, err)
	assert.Nil(t, fresh.SelectedService)
	assert.False(t, fresh.Submitting)
	assert.Equal(t, snapshot.Generation+1, fresh.Generation)
}

func TestStaleGenerationOutcomeIsDiscarded(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)

	snapshot, err := s.BeginSubmission(ctx, d.SessionID)
	require.NoError(t, err)

	// The user cancels while the submission is in flight. Reset clears the
	// lock and bumps the generation.
	reset, err := s.Reset(ctx, d.SessionID)
	require.NoError(t, err)
	_, err = s.SetSelectedService(ctx, reset.SessionID, canonicalService)
	require.NoError(t, err)

	// The late outcome arrives for the old generation and must not clobber
	// the fresh draft.
	require.NoError(t, s.CompleteSubmission(ctx, d.SessionID, snapshot.Generation, true))

	fresh, err := s.Get(ctx, d.SessionID)
	require.NoError(t, err)
	assert.NotNil(t, fresh.SelectedService)
	assert.Equal(t, reset.Generation, fresh.Generation)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	d := newDraft(t, s)

	withService, err := s.SetSelectedService(ctx, d.SessionID, canonicalService)
	require.NoError(t, err)
	withService.SelectedService.Name = "mutated locally"

	fresh, err := s.Get(ctx, d.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Recovery Consultation", fresh.SelectedService.Name)
}

func TestStepErrorMessage(t *testing.T) {
	err := &StepError{Requested: 4, Allowed: 2}
	assert.Contains(t, err.Error(), "step 4")

	var target *StepError
	assert.True(t, errors.As(err, &target))
}
