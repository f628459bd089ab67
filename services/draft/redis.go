package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"recoveryoffice/models"
)

const draftKeyPrefix = "booking:draft:"

// RedisStore persists drafts as JSON blobs with a TTL, so progress survives
// process restarts and is shared across instances.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore creates a Redis-backed draft store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) Create(ctx context.Context) (*models.Draft, error) {
	now := time.Now()
	d := &models.Draft{
		SessionID:      uuid.New().String(),
		CurrentStep:    models.StepService,
		IdempotencyKey: uuid.New().String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Draft, error) {
	return s.load(ctx, sessionID)
}

func (s *RedisStore) SetSelectedService(ctx context.Context, sessionID string, service models.ServiceCatalogEntry) (*models.Draft, error) {
	return s.update(ctx, sessionID, func(d *models.Draft) error {
		d.SelectedService = &service
		return nil
	})
}

func (s *RedisStore) SetSelectedDate(ctx context.Context, sessionID string, date string) (*models.Draft, error) {
	return s.update(ctx, sessionID, func(d *models.Draft) error {
		d.SelectedDate = date
		return nil
	})
}

func (s *RedisStore) SetSelectedTimeSlot(ctx context.Context, sessionID string, slot models.TimeSlot) (*models.Draft, error) {
	return s.update(ctx, sessionID, func(d *models.Draft) error {
		d.SelectedTimeSlot = &slot
		return nil
	})
}

func (s *RedisStore) SetClientInfo(ctx context.Context, sessionID string, info models.ClientInfo) (*models.Draft, error) {
	return s.update(ctx, sessionID, func(d *models.Draft) error {
		d.ClientInfo = &info
		return nil
	})
}

func (s *RedisStore) SetAvailableServices(ctx context.Context, sessionID string, services []models.ServiceCatalogEntry) (*models.Draft, error) {
	return s.update(ctx, sessionID, func(d *models.Draft) error {
		d.AvailableServices = services
		return nil
	})
}

func (s *RedisStore) SetCurrentStep(ctx context.Context, sessionID string, step int) (*models.Draft, error) {
	return s.update(ctx, sessionID, func(d *models.Draft) error {
		return applyStep(d, step)
	})
}

func (s *RedisStore) Reset(ctx context.Context, sessionID string) (*models.Draft, error) {
	d, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resetDraft(d)
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *RedisStore) BeginSubmission(ctx context.Context, sessionID string) (*models.Draft, error) {
	d, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if d.Submitting {
		return nil, ErrDraftLocked
	}
	d.Submitting = true
	d.UpdatedAt = time.Now()
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *RedisStore) CompleteSubmission(ctx context.Context, sessionID string, generation int64, success bool) error {
	d, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if d.Generation != generation {
		// Reset raced the submission; drop the late outcome.
		return nil
	}
	d.Submitting = false
	if success {
		resetDraft(d)
	} else {
		d.UpdatedAt = time.Now()
	}
	return s.save(ctx, d)
}

func (s *RedisStore) update(ctx context.Context, sessionID string, mutate func(*models.Draft) error) (*models.Draft, error) {
	d, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if d.Submitting {
		return nil, ErrDraftLocked
	}
	if err := mutate(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *RedisStore) load(ctx context.Context, sessionID string) (*models.Draft, error) {
	data, err := s.Client.Get(ctx, draftKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking draft: %w", err)
	}
	var d models.Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &d, nil
}

func (s *RedisStore) save(ctx context.Context, d *models.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftKeyPrefix+d.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}
