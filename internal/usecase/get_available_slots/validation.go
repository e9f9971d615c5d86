package get_available_slots

import (
	"fmt"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Grid.Valid() {
		return fmt.Errorf("%w: unknown grid %q", ErrInvalidInput, req.Grid)
	}

	return nil
}

// validateDate проверяет, что дата не превышает ограничение advanceBookingDays
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if advanceBookingDays == 0 {
		return nil
	}

	if domain.DateBeyondLimit(requestDate, now, advanceBookingDays) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// stepForGrid возвращает шаг сетки в минутах
func stepForGrid(grid Grid, settings *domain.RestaurantSettings) int {
	if grid == GridHourly {
		return domain.CalendarGridStepMinutes
	}
	return settings.SlotStepMinutes
}
