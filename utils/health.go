package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external collaborators.
type HealthStatus struct {
	BackendAPI bool      `json:"backendApi"`
	Redis      *bool     `json:"redis,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. redisClient may be nil when drafts live in memory.
func StartHealthMonitor(redisClient *redis.Client, pingBackend func(ctx context.Context) error) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

			var redisHealth *bool
			if redisClient != nil {
				ok := redisClient.Ping(ctx).Err() == nil
				redisHealth = &ok
			}

			backendHealthy := pingBackend(ctx) == nil
			cancel()

			healthMu.Lock()
			currentHealth = HealthStatus{
				BackendAPI: backendHealthy,
				Redis:      redisHealth,
				CheckedAt:  time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
