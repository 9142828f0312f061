package status

import (
	"context"
	"testing"
	"time"

	statusRepo "ingcap/database/repository/status"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewStatusService(statusRepo.NewMemoryStatusRepo())
	fixed := time.Date(2025, 1, 20, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	svc.Now = func() time.Time { return fixed }

	check, err := svc.Create(ctx, "test_client_120000")
	require.NoError(t, err)
	_, err = uuid.Parse(check.ID)
	assert.NoError(t, err)
	assert.Equal(t, "test_client_120000", check.ClientName)
	assert.Equal(t, time.UTC, check.Timestamp.Location())
	assert.True(t, fixed.Equal(check.Timestamp))

	checks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, check.ID, checks[0].ID)
}
