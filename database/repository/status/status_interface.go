package statusRepo

import (
	"context"

	"ingcap/models"
)

// StatusCheckRepository stores client status checks.
type StatusCheckRepository interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	GetAll(ctx context.Context, limit int) ([]models.StatusCheck, error)
}
