package get_available_slots

import (
	"context"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByRestaurantWithFilter получает бронирования ресторана на конкретную дату
	GetByRestaurantWithFilter(ctx context.Context, filter domain.RestaurantBookingsFilter) ([]*domain.Booking, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListTables(ctx context.Context, restaurantID int64, includeInactive bool) ([]*domain.Table, error)
	ListCombined(ctx context.Context, restaurantID int64, includeInactive bool) ([]*domain.CombinedTable, error)
}

// ScheduleRepository интерфейс репозитория рабочих часов
type ScheduleRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64) ([]*domain.OpeningHoursRule, error)
}

// SettingsRepository интерфейс репозитория политики бронирования
type SettingsRepository interface {
	GetByRestaurant(ctx context.Context, restaurantID int64) (*domain.RestaurantSettings, error)
}

// AvailabilityCache интерфейс кеша ответов о доступности
type AvailabilityCache interface {
	Get(ctx context.Context, restaurantID int64, date string, grid string) ([]byte, bool)
	Set(ctx context.Context, restaurantID int64, date string, grid string, payload []byte)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
