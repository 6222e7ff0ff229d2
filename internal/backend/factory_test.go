package backend

import (
	"context"
	"testing"

	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryBackend(t *testing.T) {
	b, err := New(context.Background(), &config.Config{DataBackend: config.BackendMemory})
	require.NoError(t, err)

	assert.Equal(t, config.BackendMemory, b.Name)
	assert.NotNil(t, b.Transactions)
	assert.NotNil(t, b.Users)
	assert.Equal(t, "up", b.Health(context.Background())["status"])
	assert.NoError(t, b.Cleanup())

	all, err := b.Transactions.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), &config.Config{DataBackend: "sheets"})
	assert.ErrorContains(t, err, "unsupported backend type")

	_, err = New(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewPostgresRequiresConnectionString(t *testing.T) {
	_, err := New(context.Background(), &config.Config{DataBackend: config.BackendPostgres})
	assert.Error(t, err)
}
