package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthMonitor_CheckNow(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("store only", func(t *testing.T) {
		m := NewHealthMonitor(ok, nil, 0)
		status := m.CheckNow(context.Background())
		assert.True(t, status.Store)
		assert.Nil(t, status.Cache)
		assert.True(t, status.Healthy())
		assert.Equal(t, status, m.Status())
	})

	t.Run("cache down", func(t *testing.T) {
		m := NewHealthMonitor(ok, down, 0)
		status := m.CheckNow(context.Background())
		require.NotNil(t, status.Cache)
		assert.False(t, *status.Cache)
		assert.False(t, status.Healthy())
	})

	t.Run("store down", func(t *testing.T) {
		m := NewHealthMonitor(down, ok, 0)
		assert.False(t, m.CheckNow(context.Background()).Healthy())
	})
}
