package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strogmv/appdoc/internal/domain"
)

const findApplicationSQL = `
SELECT id, state, first_name, surname, reference_number, applied_on,
       is_legal_entity, legal_entity, products, current_review
FROM applications
WHERE id = $1`

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ApplicationRepository reads applications from Postgres.
// legal_entity, products and current_review are JSONB columns.
type ApplicationRepository struct {
	DB querier
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{DB: pool}
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var (
		app         domain.Application
		state       string
		appliedOn   time.Time
		legalEntity []byte
		products    []byte
		review      []byte
	)
	err := r.DB.QueryRow(ctx, findApplicationSQL, id).Scan(
		&app.ID, &state, &app.Person.FirstName, &app.Person.Surname, &app.ReferenceNumber, &appliedOn,
		&app.IsLegalEntity, &legalEntity, &products, &review,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query application: %w", err)
	}
	app.State = domain.ApplicationState(state)
	app.Date = appliedOn

	if err := decodeJSON(legalEntity, &app.LegalEntity); err != nil {
		return nil, fmt.Errorf("decode legal_entity: %w", err)
	}
	if err := decodeJSON(products, &app.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if err := decodeJSON(review, &app.CurrentReview); err != nil {
		return nil, fmt.Errorf("decode current_review: %w", err)
	}
	return &app, nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
