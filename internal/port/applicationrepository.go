package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/strogmv/appdoc/internal/domain"
)

// ApplicationRepository looks up application snapshots.
// FindByID returns (nil, nil) when no application matches the id.
type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
}
