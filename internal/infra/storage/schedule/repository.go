package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/dbmetrics"
	"github.com/tablebook/reservation-service/pkg/psqlbuilder"
	"github.com/tablebook/reservation-service/pkg/types"
)

// DBExecutor общий интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с правилами рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByRestaurant получает правила рабочих часов ресторана
// Уникальный индекс (restaurant_id, day_of_week) гарантирует не больше
// одного правила на день недели
func (r *Repository) GetByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.OpeningHoursRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "restaurant_id", "day_of_week", "is_open", "open_time", "close_time", "created_at", "updated_at",
	).
		From("opening_hours").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.OpeningHoursRule, 0, 7)
	for rows.Next() {
		var rule domain.OpeningHoursRule
		var openTime, closeTime sql.NullString
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&rule.ID,
			&rule.RestaurantID,
			&rule.DayOfWeek,
			&rule.IsOpen,
			&openTime,
			&closeTime,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByRestaurant - scan row: %v", ErrScanRow, err)
		}

		if openTime.Valid {
			_ = rule.OpenTime.Scan(openTime.String)
		}
		if closeTime.Valid {
			_ = rule.CloseTime.Scan(closeTime.String)
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceWeek заменяет недельное расписание ресторана целиком
// Upsert по (restaurant_id, day_of_week): правило на день недели одно
func (r *Repository) ReplaceWeek(ctx context.Context, restaurantID int64, rules []*domain.OpeningHoursRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, rule := range rules {
		query, args, err := psqlbuilder.Insert("opening_hours").
			Columns("restaurant_id", "day_of_week", "is_open", "open_time", "close_time").
			Values(restaurantID, rule.DayOfWeek, rule.IsOpen, nullableTime(rule.OpenTime), nullableTime(rule.CloseTime)).
			Suffix(`ON CONFLICT (restaurant_id, day_of_week) DO UPDATE
				SET is_open = EXCLUDED.is_open,
				    open_time = EXCLUDED.open_time,
				    close_time = EXCLUDED.close_time,
				    updated_at = NOW()`).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: ReplaceWeek - build upsert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceWeek - execute upsert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// nullableTime конвертирует TimeString в nullable-значение для записи
// (у закрытого дня времена отсутствуют)
func nullableTime(t types.TimeString) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.String()
}
