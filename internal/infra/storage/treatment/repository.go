package treatment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/dbmetrics"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий процедур (таблица treatments)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория процедур
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByValue получает процедуру по машинному ключу (value)
func (r *Repository) GetByValue(ctx context.Context, value string) (*domain.Treatment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"value",
		"label",
		"duration",
		"price",
		"active",
		"created_at",
	).
		From("treatments").
		Where(squirrel.Eq{"value": value}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByValue - build select query: %v", ErrBuildQuery, err)
	}

	treatment, err := scanTreatment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTreatmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByValue - scan row: %v", ErrScanRow, err)
	}

	return treatment, nil
}

// ListActive получает все активные процедуры, отсортированные по ID
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Treatment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"value",
		"label",
		"duration",
		"price",
		"active",
		"created_at",
	).
		From("treatments").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var treatments []*domain.Treatment
	for rows.Next() {
		treatment, err := scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		treatments = append(treatments, treatment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows iteration: %v", ErrExecQuery, err)
	}

	return treatments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTreatment(row rowScanner) (*domain.Treatment, error) {
	var treatment domain.Treatment
	var price sql.NullFloat64
	var createdAt sql.NullTime

	if err := row.Scan(
		&treatment.ID,
		&treatment.Value,
		&treatment.Label,
		&treatment.DurationMinutes,
		&price,
		&treatment.Active,
		&createdAt,
	); err != nil {
		return nil, err
	}

	if price.Valid {
		treatment.Price = &price.Float64
	}
	treatment.CreatedAt = createdAt.Time

	return &treatment, nil
}
