package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strogmv/appdoc/internal/domain"
)

type rowMock struct {
	values []any
	err    error
}

func (r rowMock) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *bool:
			*p = r.values[i].(bool)
		case *[]byte:
			if r.values[i] != nil {
				*p = r.values[i].([]byte)
			}
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

type querierMock struct {
	row  rowMock
	args []any
}

func (q *querierMock) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestFindByIDDecodesJSONColumns(t *testing.T) {
	id := uuid.New()
	applied := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	q := &querierMock{row: rowMock{values: []any{
		id, "in_review", "Ann", "Lee", "REF-3", applied, true,
		[]byte(`{"name":"Lee Trust","registrationNumber":"IT1"}`),
		[]byte(`[{"name":"Growth","funds":[{"name":"Equity","amount":"100.00","fees":"5.00"}]}]`),
		[]byte(`{"reason":"address check"}`),
	}}}
	repo := &ApplicationRepository{DB: q}

	app, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, []any{id}, q.args)
	assert.Equal(t, domain.StateInReview, app.State)
	assert.Equal(t, "Ann Lee", app.Person.FullName())
	assert.Equal(t, applied, app.Date)
	require.NotNil(t, app.LegalEntity)
	assert.Equal(t, "Lee Trust", app.LegalEntity.Name)
	require.Len(t, app.Products, 1)
	assert.Equal(t, "95", app.Products[0].Funds[0].Amount.Sub(app.Products[0].Funds[0].Fees).String())
	require.NotNil(t, app.CurrentReview)
	assert.Equal(t, "address check", app.CurrentReview.Reason)
}

func TestFindByIDNullColumns(t *testing.T) {
	q := &querierMock{row: rowMock{values: []any{
		uuid.New(), "pending", "Ann", "Lee", "REF-4", time.Now(), false, nil, nil, nil,
	}}}
	app, err := (&ApplicationRepository{DB: q}).FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, app.LegalEntity)
	assert.Nil(t, app.Products)
	assert.Nil(t, app.CurrentReview)
}

func TestFindByIDMissingRow(t *testing.T) {
	q := &querierMock{row: rowMock{err: pgx.ErrNoRows}}
	app, err := (&ApplicationRepository{DB: q}).FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestFindByIDQueryError(t *testing.T) {
	boom := errors.New("connection reset")
	q := &querierMock{row: rowMock{err: boom}}
	_, err := (&ApplicationRepository{DB: q}).FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}
