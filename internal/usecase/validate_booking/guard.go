package validate_booking

import (
	"fmt"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// runGuard последовательно применяет проверки допустимости бронирования
// и останавливается на первой неудачной:
//  1. ресторан открыт в этот день
//  2. время начала внутри интервала [open, close)
//  3. время не нарушает минимальный срок до бронирования (cutoff)
//  4. явно выбранная посадка вмещает компанию
//  5. явно выбранная посадка свободна на это время
//
// Все данные передаются снимками: guard - чистая функция без I/O,
// одна и та же логика работает и в предварительной проверке, и при создании
func runGuard(
	req *Request,
	rule *domain.OpeningHoursRule,
	tables []*domain.Table,
	combinations []*domain.CombinedTable,
	bookings []*domain.Booking,
	now time.Time,
	cutoffMinutes int,
) *Response {
	// 1. Ресторан закрыт: день без правила или isOpen=false
	if rule == nil || !rule.IsOpen {
		return &Response{
			Allowed: false,
			Reason:  domain.ReasonRestaurantClosed,
			Message: "Restaurant is closed on the selected date.",
		}
	}

	// 2. Начало строго внутри рабочего интервала: open включительно, close нет
	if !rule.ContainsTime(req.StartTime) {
		return &Response{
			Allowed: false,
			Reason:  domain.ReasonOutsideOperatingHours,
			Message: fmt.Sprintf("Selected time is outside operating hours (%s - %s).", rule.OpenTime, rule.CloseTime),
		}
	}

	// 3. Срок до бронирования
	if rejected := checkCutoff(req.Date, req.StartTime, now, cutoffMinutes); rejected != nil {
		return rejected
	}

	// 4. Вместимость явно выбранной посадки
	alloc := domain.Allocate(req.PartySize, tables, combinations, req.Selection)
	if alloc.Status == domain.AllocationRejected {
		return &Response{
			Allowed:   false,
			Reason:    domain.ReasonInsufficientCapacity,
			Message:   fmt.Sprintf("Selected table can only accommodate %d guests. You have %d guests.", alloc.Available, alloc.Required),
			Required:  alloc.Required,
			Available: alloc.Available,
		}
	}

	// 5. Занятость явно выбранной посадки; при авто-назначении выбор
	// отложен до создания, проверять нечего
	if alloc.Status == domain.AllocationAssigned {
		if rejected := checkConflict(alloc, combinations, bookings, req.Date, req.StartTime); rejected != nil {
			return rejected
		}
	}

	return nil
}

// checkCutoff проверяет, что время бронирования не в прошлом и отстоит
// от текущего момента минимум на cutoffMinutes (для сегодняшней даты)
func checkCutoff(date time.Time, start types.TimeString, now time.Time, cutoffMinutes int) *Response {
	if domain.DateInPast(date, now) {
		return &Response{
			Allowed: false,
			Reason:  domain.ReasonBookingCutoff,
			Message: "Selected date has already passed.",
		}
	}

	if !domain.SameDay(date, now) {
		return nil
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cutoffMinutes)
	if err != nil {
		// Порог за пределами суток: сегодня бронировать уже нельзя
		return cutoffRejection(cutoffMinutes)
	}

	if start.IsBefore(minAllowed) {
		return cutoffRejection(cutoffMinutes)
	}

	return nil
}

func cutoffRejection(cutoffMinutes int) *Response {
	msg := "Selected time has already passed."
	if cutoffMinutes > 0 {
		msg = fmt.Sprintf("Bookings must be made at least %d minutes in advance.", cutoffMinutes)
	}
	return &Response{
		Allowed: false,
		Reason:  domain.ReasonBookingCutoff,
		Message: msg,
	}
}

// checkConflict проверяет, что назначенная посадка свободна на указанное время
// Для комбинации проверяется каждый стол-участник: бронирование любого из них
// (напрямую или через другую комбинацию) блокирует комбинацию целиком
func checkConflict(
	alloc domain.AllocationResult,
	combinations []*domain.CombinedTable,
	bookings []*domain.Booking,
	date time.Time,
	start types.TimeString,
) *Response {
	var tableIDs []int64

	switch {
	case alloc.TableID != nil:
		tableIDs = []int64{*alloc.TableID}
	case alloc.CombinedTableID != nil:
		for _, c := range combinations {
			if c.ID == *alloc.CombinedTableID {
				tableIDs = c.TableIDs
				break
			}
		}
	}

	for _, tableID := range tableIDs {
		perTable := filterByTable(bookings, tableID, combinations)
		if domain.FindOccupying(perTable, date, start) != nil {
			return &Response{
				Allowed: false,
				Reason:  domain.ReasonSlotConflict,
				Message: "Selected table is already booked at this time.",
			}
		}
	}

	return nil
}

// filterByTable отбирает бронирования, занимающие указанный стол
// Обязательный шаг перед проверкой конфликтов: без него бронирования
// других столов дадут ложные конфликты
func filterByTable(bookings []*domain.Booking, tableID int64, combinations []*domain.CombinedTable) []*domain.Booking {
	filtered := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.OccupiesTable(tableID, combinations) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}
