package draft

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"recoveryoffice/models"
)

// MemoryStore keeps drafts in process memory. Default for single-instance
// deployments and tests; RedisStore covers restarts and multiple instances.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]*models.Draft
}

// NewMemoryStore creates an empty in-memory draft store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]*models.Draft)}
}

func (s *MemoryStore) Create(_ context.Context) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	d := &models.Draft{
		SessionID:      uuid.New().String(),
		CurrentStep:    models.StepService,
		IdempotencyKey: uuid.New().String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.drafts[d.SessionID] = d
	return snapshot(d), nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(d), nil
}

func (s *MemoryStore) SetSelectedService(ctx context.Context, sessionID string, service models.ServiceCatalogEntry) (*models.Draft, error) {
	return s.update(sessionID, func(d *models.Draft) error {
		d.SelectedService = &service
		return nil
	})
}

func (s *MemoryStore) SetSelectedDate(ctx context.Context, sessionID string, date string) (*models.Draft, error) {
	return s.update(sessionID, func(d *models.Draft) error {
		d.SelectedDate = date
		return nil
	})
}

func (s *MemoryStore) SetSelectedTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.Draft, error) {
	return s.update(sessionID, func(d *models.Draft) error {
		d.SelectedTimeSlot = &slot
		return nil
	})
}

func (s *MemoryStore) SetClientInfo(ctx context.Context, sessionID string, info models.ClientInfo) (*models.Draft, error) {
	return s.update(sessionID, func(d *models.Draft) error {
		d.ClientInfo = &info
		return nil
	})
}

func (s *MemoryStore) SetAvailableServices(ctx context.Context, sessionID string, services []models.ServiceCatalogEntry) (*models.Draft, error) {
	return s.update(sessionID, func(d *models.Draft) error {
		d.AvailableServices = services
		return nil
	})
}

func (s *MemoryStore) SetCurrentStep(ctx context.Context, sessionID string, step int) (*models.Draft, error) {
	return s.update(sessionID, func(d *models.Draft) error {
		return applyStep(d, step)
	})
}

func (s *MemoryStore) Reset(_ context.Context, sessionID string) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	resetDraft(d)
	return snapshot(d), nil
}

func (s *MemoryStore) BeginSubmission(_ context.Context, sessionID string) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if d.Submitting {
		return nil, ErrDraftLocked
	}
	d.Submitting = true
	d.UpdatedAt = time.Now()
	return snapshot(d), nil
}

func (s *MemoryStore) CompleteSubmission(_ context.Context, sessionID string, generation int64, success bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return ErrNotFound
	}
	if d.Generation != generation {
		// The draft was reset while the submission was in flight; the late
		// outcome must not be applied to the fresh draft.
		return nil
	}
	d.Submitting = false
	if success {
		resetDraft(d)
	} else {
		d.UpdatedAt = time.Now()
	}
	return nil
}

func (s *MemoryStore) update(sessionID string, mutate func(*models.Draft) error) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if d.Submitting {
		return nil, ErrDraftLocked
	}
	if err := mutate(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	return snapshot(d), nil
}

// resetDraft restores the initial empty state in place, keeping the session
// alive but bumping the generation so in-flight outcomes are orphaned.
func resetDraft(d *models.Draft) {
	d.SelectedService = nil
	d.SelectedDate = ""
	d.SelectedTimeSlot = nil
	d.ClientInfo = nil
	d.AvailableServices = nil
	d.CurrentStep = models.StepService
	d.Generation++
	d.Submitting = false
	d.IdempotencyKey = uuid.New().String()
	d.UpdatedAt = time.Now()
}

// snapshot hands callers a copy so no consumer can mutate the shared draft
// behind the store's back.
func snapshot(d *models.Draft) *models.Draft {
	out := *d
	if d.SelectedService != nil {
		svc := *d.SelectedService
		out.SelectedService = &svc
	}
	if d.SelectedTimeSlot != nil {
		slot := *d.SelectedTimeSlot
		out.SelectedTimeSlot = &slot
	}
	if d.ClientInfo != nil {
		info := *d.ClientInfo
		out.ClientInfo = &info
	}
	if d.AvailableServices != nil {
		out.AvailableServices = make([]models.ServiceCatalogEntry, len(d.AvailableServices))
		copy(out.AvailableServices, d.AvailableServices)
	}
	return &out
}
