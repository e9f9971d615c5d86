package validate_booking

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

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidInput, req.StartTime, *req.EndTime)
		}
	}

	if req.PartySize < 1 || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between 1 and %d", ErrInvalidInput, domain.MaxPartySize)
	}

	if req.Selection != nil {
		if req.Selection.Kind != domain.SelectionTable && req.Selection.Kind != domain.SelectionCombination {
			return fmt.Errorf("%w: unknown selection kind %q", ErrInvalidInput, req.Selection.Kind)
		}
		if req.Selection.ID <= 0 {
			return fmt.Errorf("%w: selection id must be positive", ErrInvalidInput)
		}
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
