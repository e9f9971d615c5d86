package get_available_slots

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// enumerateSlots генерирует слоты рабочего дня по правилу рабочих часов
// Сетка привязана к целым часам; слоты за пределами интервала [open, close)
// отбрасываются. Для сегодняшней даты дополнительно фильтруются слоты,
// нарушающие минимальное время до бронирования (cutoff).
func enumerateSlots(
	rule *domain.OpeningHoursRule,
	stepMinutes int,
	requestDate time.Time,
	now time.Time,
	cutoffMinutes int,
) []domain.TimeSlot {
	if rule == nil || !rule.IsOpen {
		return []domain.TimeSlot{}
	}
	if domain.DateInPast(requestDate, now) {
		return []domain.TimeSlot{}
	}

	all := domain.GenerateTimeSlots(rule.OpenTime.Hour(), rule.CloseTime.Hour(), stepMinutes)

	inWindow := make([]domain.TimeSlot, 0, len(all))
	for _, slot := range all {
		if rule.ContainsTime(slot.Value) {
			inWindow = append(inWindow, slot)
		}
	}

	// На будущие даты cutoff не действует
	if !domain.SameDay(requestDate, now) {
		return inWindow
	}

	minAllowed, err := types.NewTimeString(now).AddMinutes(cutoffMinutes)
	if err != nil {
		// Порог за пределами суток: сегодня бронировать уже нельзя
		return []domain.TimeSlot{}
	}

	available := make([]domain.TimeSlot, 0, len(inWindow))
	for _, slot := range inWindow {
		if !slot.Value.IsBefore(minAllowed) {
			available = append(available, slot)
		}
	}
	return available
}

// markOccupancy вычисляет занятость каждого слота по столам
// Для каждой пары (слот, стол) стол считается занятым, если существует
// активное бронирование этого стола (напрямую или через комбинацию),
// интервал которого содержит время слота
func markOccupancy(
	slots []domain.TimeSlot,
	tables []*domain.Table,
	combinations []*domain.CombinedTable,
	bookings []*domain.Booking,
	date time.Time,
) []Slot {
	result := make([]Slot, len(slots))

	for i, slot := range slots {
		free := make([]int64, 0, len(tables))
		for _, table := range tables {
			perTable := filterByTable(bookings, table.ID, combinations)
			if domain.FindOccupying(perTable, date, slot.Value) == nil {
				free = append(free, table.ID)
			}
		}

		result[i] = Slot{
			Time:           slot.Value,
			Label:          slot.Label,
			AvailableSpots: len(free),
			TotalSpots:     len(tables),
			FreeTableIDs:   free,
		}
	}

	return result
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
