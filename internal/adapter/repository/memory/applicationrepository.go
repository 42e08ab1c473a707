// Package memory provides an in-memory implementation of the repository.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/strogmv/appdoc/internal/domain"
)

type ApplicationRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]domain.Application
}

// ErrMissingID is returned when saving an application without an id.
var ErrMissingID = errors.New("application id is required")

// NewApplicationRepository stores seed through Save, so every seeded application needs an id.
func NewApplicationRepository(seed ...domain.Application) (*ApplicationRepository, error) {
	r := &ApplicationRepository{
		data: make(map[uuid.UUID]domain.Application, len(seed)),
	}
	for i, app := range seed {
		if err := r.Save(context.Background(), app); err != nil {
			return nil, fmt.Errorf("seed application %d: %w", i, err)
		}
	}
	return r, nil
}

func (r *ApplicationRepository) Save(ctx context.Context, app domain.Application) error {
	if app.ID == uuid.Nil {
		return ErrMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.ID] = app
	return nil
}

// FindByID returns a copy of the stored application, or nil when absent.
func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &app, nil
}
