package statusRepo

import (
	"context"
	"sync"

	"ingcap/models"
)

type memoryStatusRepo struct {
	mu     sync.RWMutex
	checks []models.StatusCheck
}

// NewMemoryStatusRepo returns an in-memory StatusCheckRepository.
func NewMemoryStatusRepo() StatusCheckRepository {
	return &memoryStatusRepo{}
}

func (r *memoryStatusRepo) Create(_ context.Context, check *models.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, *check)
	return nil
}

func (r *memoryStatusRepo) GetAll(_ context.Context, limit int) ([]models.StatusCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.checks)
	if limit > 0 && n > limit {
		n = limit
	}
	return append([]models.StatusCheck{}, r.checks[:n]...), nil
}
