package create_booking

import (
	"fmt"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guestID must be positive", ErrInvalidInput)
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

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не превышает
// ограничение advanceBookingDays
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	if domain.DateInPast(requestDate, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	if advanceBookingDays == 0 {
		return nil
	}

	if domain.DateBeyondLimit(requestDate, now, advanceBookingDays) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет минимальный срок до бронирования (cutoff)
// для сегодняшней даты; на будущие даты ограничение не действует
func validateBookingTime(requestDate time.Time, start types.TimeString, now time.Time, cutoffMinutes int) error {
	if !domain.SameDay(requestDate, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cutoffMinutes)
	if err != nil {
		// Порог за пределами суток: сегодня бронировать уже нельзя
		return fmt.Errorf("%w: booking window for today is over", ErrBookingCutoff)
	}

	if start.IsBefore(minAllowed) {
		if cutoffMinutes > 0 {
			return fmt.Errorf("%w: bookings must be made at least %d minutes in advance", ErrBookingCutoff, cutoffMinutes)
		}
		return fmt.Errorf("%w: time has already passed", ErrBookingCutoff)
	}

	return nil
}
