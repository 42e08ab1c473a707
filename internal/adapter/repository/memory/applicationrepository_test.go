package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/appdoc/internal/domain"
)

func TestApplicationRepository(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo, err := NewApplicationRepository(domain.Application{ID: id, State: domain.StatePending, ReferenceNumber: "REF-1"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "REF-1", got.ReferenceNumber)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.ErrorIs(t, repo.Save(ctx, domain.Application{}), ErrMissingID)
	require.NoError(t, repo.Save(ctx, domain.Application{ID: id, State: domain.StateActivated}))
	got, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StateActivated, got.State)
}

func TestNewApplicationRepositoryRejectsSeedWithoutID(t *testing.T) {
	_, err := NewApplicationRepository(
		domain.Application{ID: uuid.New()},
		domain.Application{ReferenceNumber: "REF-2"},
	)
	assert.ErrorIs(t, err, ErrMissingID)
}
