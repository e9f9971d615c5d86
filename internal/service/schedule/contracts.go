package schedule

import (
	"context"

	"github.com/tablebook/reservation-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.OpeningHoursRule, error)
	ReplaceWeek(ctx context.Context, restaurantID int64, rules []*domain.OpeningHoursRule) error
}

// SettingsRepository интерфейс репозитория политики бронирования
type SettingsRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64) (*domain.RestaurantSettings, error)
	Upsert(ctx context.Context, s *domain.RestaurantSettings) (*domain.RestaurantSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
