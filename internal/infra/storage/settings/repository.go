package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/dbmetrics"
	"github.com/tablebook/reservation-service/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с политикой бронирования ресторана
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByRestaurant получает настройки ресторана
// Возвращает ErrSettingsNotFound, если настройки не заданы:
// вызывающая сторона подставляет значения по умолчанию
func (r *Repository) GetByRestaurant(ctx context.Context, restaurantID int64) (*domain.RestaurantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"restaurant_id",
		"slot_step_minutes",
		"default_duration_minutes",
		"cutoff_minutes",
		"advance_booking_days",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("restaurant_settings").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.RestaurantSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.RestaurantID,
		&s.SlotStepMinutes,
		&s.DefaultDurationMinutes,
		&s.CutoffMinutes,
		&s.AdvanceBookingDays,
		&s.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRestaurant - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки ресторана
func (r *Repository) Upsert(ctx context.Context, s *domain.RestaurantSettings) (*domain.RestaurantSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("restaurant_settings").
		Columns(
			"restaurant_id",
			"slot_step_minutes",
			"default_duration_minutes",
			"cutoff_minutes",
			"advance_booking_days",
			"timezone",
		).
		Values(
			s.RestaurantID,
			s.SlotStepMinutes,
			s.DefaultDurationMinutes,
			s.CutoffMinutes,
			s.AdvanceBookingDays,
			s.Timezone,
		).
		Suffix(`ON CONFLICT (restaurant_id) DO UPDATE
			SET slot_step_minutes = EXCLUDED.slot_step_minutes,
			    default_duration_minutes = EXCLUDED.default_duration_minutes,
			    cutoff_minutes = EXCLUDED.cutoff_minutes,
			    advance_booking_days = EXCLUDED.advance_booking_days,
			    timezone = EXCLUDED.timezone,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
