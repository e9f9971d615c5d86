package validate_booking

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// Request модель запроса на предварительную проверку бронирования
type Request struct {
	RestaurantID int64                  // ID ресторана
	Date         time.Time              // Дата бронирования (без времени)
	StartTime    types.TimeString       // Время начала
	EndTime      *types.TimeString      // Время окончания (nil = открытое окончание)
	PartySize    int                    // Размер компании гостей
	Selection    *domain.TableSelection // Явный выбор стола/комбинации (nil = авто)
}

// Response структурированный результат проверки
// Отказ - ожидаемый результат, а не ошибка: вызывающая сторона
// ветвится по Allowed/Reason и показывает конкретную причину
type Response struct {
	Allowed bool                   `json:"allowed"`
	Reason  domain.RejectionReason `json:"reason,omitempty"`
	Message string                 `json:"message,omitempty"`

	// Заполняются при Reason == insufficient_capacity
	Required  int `json:"required,omitempty"`
	Available int `json:"available,omitempty"`
}

// allowed создает положительный результат проверки
func allowed() *Response {
	return &Response{Allowed: true}
}
