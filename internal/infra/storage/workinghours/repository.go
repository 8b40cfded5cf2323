package workinghours

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

// Repository репозиторий правил рабочих часов (таблица availability_rules)
// Инвариант: не больше одного активного правила на день недели
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDayOfWeek получает активное правило для дня недели (0=воскресенье .. 6=суббота)
// Возвращает ErrRuleNotFound, если правило не задано
func (r *Repository) GetByDayOfWeek(ctx context.Context, dayOfWeek int) (*domain.WorkingHoursRule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
		"created_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"day_of_week": dayOfWeek, "is_active": true}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDayOfWeek - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("%w: GetByDayOfWeek - scan row: %v", ErrScanRow, err)
	}

	return rule, nil
}

// List получает все активные правила, отсортированные по дню недели
func (r *Repository) List(ctx context.Context) ([]*domain.WorkingHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
		"created_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var rules []*domain.WorkingHoursRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrExecQuery, err)
	}

	return rules, nil
}

// Upsert создает или заменяет правило для дня недели.
// Существующее правило этого дня деактивируется - инвариант "одно активное
// правило на день недели" поддерживается на уровне запроса
func (r *Repository) Upsert(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error) {
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	deactivate, args, err := psqlbuilder.Update("availability_rules").
		Set("is_active", false).
		Where(squirrel.Eq{"day_of_week": rule.DayOfWeek, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build deactivate query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deactivate, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - deactivate old rule: %v", ErrExecQuery, err)
	}

	insert, args, err := psqlbuilder.Insert("availability_rules").
		Columns("day_of_week", "start_time", "end_time", "is_active").
		Values(rule.DayOfWeek, rule.StartTime, rule.EndTime, true).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, insert, args...).Scan(&rule.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.IsActive = true
	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// Deactivate убирает правило для дня недели (день становится закрытым)
func (r *Repository) Deactivate(ctx context.Context, dayOfWeek int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("is_active", false).
		Where(squirrel.Eq{"day_of_week": dayOfWeek, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.WorkingHoursRule, error) {
	var rule domain.WorkingHoursRule
	var createdAt sql.NullTime

	if err := row.Scan(
		&rule.ID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsActive,
		&createdAt,
	); err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	return &rule, nil
}
