package create_booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

const (
	endOfDayMinutes        = 24 * 60
	confirmationCodeLength = 10
)

// deriveEndTime выводит время окончания из политики ресторана, когда гость
// его не указал. Нулевая длительность по умолчанию или выход за полночь
// дают открытое окончание: стол занят до конца дня
func deriveEndTime(start types.TimeString, requested *types.TimeString, defaultDurationMinutes int) *types.TimeString {
	if requested != nil {
		return requested
	}
	if defaultDurationMinutes <= 0 {
		return nil
	}

	endMinutes := start.Minutes() + defaultDurationMinutes
	if endMinutes >= endOfDayMinutes {
		return nil
	}

	end, err := types.NewTimeStringFromMinutes(endMinutes)
	if err != nil {
		return nil
	}
	return &end
}

// overlapsInterval проверяет пересечение интервала [start, end) с занятостью
// бронирования. Открытое окончание (nil) трактуется как занятость до конца дня
func overlapsInterval(b *domain.Booking, start types.TimeString, end *types.TimeString) bool {
	bookingEnd := endOfDayMinutes
	if b.EndTime != nil {
		bookingEnd = b.EndTime.Minutes()
	}

	requestEnd := endOfDayMinutes
	if end != nil {
		requestEnd = end.Minutes()
	}

	return b.StartTime.Minutes() < requestEnd && start.Minutes() < bookingEnd
}

// tableOccupied проверяет, занят ли стол на интервал [start, end) в указанную
// дату. Бронирования должны быть предварительно отфильтрованы по дате;
// фильтр по столу учитывает занятость через комбинации
func tableOccupied(
	tableID int64,
	bookings []*domain.Booking,
	combinations []*domain.CombinedTable,
	date time.Time,
	start types.TimeString,
	end *types.TimeString,
) bool {
	for _, b := range bookings {
		if !b.IsActive() || !domain.SameDay(b.BookingDate, date) {
			continue
		}
		if !b.OccupiesTable(tableID, combinations) {
			continue
		}
		if overlapsInterval(b, start, end) {
			return true
		}
	}
	return false
}

// maxSeatingCapacity возвращает максимальную вместимость среди активных
// столов и комбинаций без учета занятости. Используется, чтобы отличить
// insufficient_capacity (компания не помещается в принципе) от slot_conflict
// (подходящая посадка существует, но занята)
func maxSeatingCapacity(tables []*domain.Table, combinations []*domain.CombinedTable) int {
	max := 0
	for _, t := range tables {
		if t.IsActive && t.Capacity > max {
			max = t.Capacity
		}
	}
	for _, c := range combinations {
		if !c.IsActive {
			continue
		}
		if capacity := c.LiveCapacity(tables); capacity > max {
			max = capacity
		}
	}
	return max
}

// generateConfirmationCode генерирует короткий код подтверждения для гостя
func generateConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:confirmationCodeLength])
}
