package status

import (
	"context"
	"fmt"
	"time"

	statusRepo "ingcap/database/repository/status"
	"ingcap/models"

	"github.com/google/uuid"
)

// listLimit caps GET /api/status.
const listLimit = 1000

// StatusService records and lists client status checks.
type StatusService interface {
	Create(ctx context.Context, clientName string) (*models.StatusCheck, error)
	List(ctx context.Context) ([]models.StatusCheck, error)
}

// DefaultStatusService is the production implementation.
type DefaultStatusService struct {
	Repo statusRepo.StatusCheckRepository
	Now  func() time.Time
}

func NewStatusService(repo statusRepo.StatusCheckRepository) *DefaultStatusService {
	return &DefaultStatusService{Repo: repo, Now: time.Now}
}

func (s *DefaultStatusService) Create(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	check := &models.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Timestamp:  s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to store status check: %w", err)
	}
	return check, nil
}

func (s *DefaultStatusService) List(ctx context.Context) ([]models.StatusCheck, error) {
	checks, err := s.Repo.GetAll(ctx, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	return checks, nil
}
