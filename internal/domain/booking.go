package domain

import (
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// BookingStatus represents the status of a reservation
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusSeated           BookingStatus = "seated"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByGuest BookingStatus = "cancelled_by_guest"
	StatusCancelledByStaff BookingStatus = "cancelled_by_staff"
	StatusNoShow           BookingStatus = "no_show"
)

// Booking represents a table reservation in the system
type Booking struct {
	ID              int64
	RestaurantID    int64
	GuestID         int64
	TableID         *int64 // nil, если занята комбинация столов
	CombinedTableID *int64 // nil, если занят одиночный стол
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         *types.TimeString // nil = открытое окончание, стол занят до конца дня
	PartySize       int
	Status          BookingStatus

	ConfirmationCode string

	GuestName  *string
	GuestPhone *string
	Notes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if a booking in this status still occupies its table
func (s BookingStatus) IsActive() bool {
	return s != StatusCancelledByGuest &&
		s != StatusCancelledByStaff &&
		s != StatusNoShow
}

// IsActive returns true if the booking still occupies its table
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByGuest || b.Status == StatusCancelledByStaff
}

// OccupiesAt returns true if the booking occupies its table at the given time.
// A booking with no end time conservatively blocks every later slot that day.
func (b *Booking) OccupiesAt(t types.TimeString) bool {
	if b.StartTime.IsAfter(t) {
		return false
	}
	if b.EndTime == nil {
		return true
	}
	return b.EndTime.IsAfter(t)
}

// OccupiesTable returns true if the booking holds the given single table,
// either directly or through a combination that includes it
func (b *Booking) OccupiesTable(tableID int64, combinations []*CombinedTable) bool {
	if b.TableID != nil && *b.TableID == tableID {
		return true
	}
	if b.CombinedTableID == nil {
		return false
	}
	for _, combo := range combinations {
		if combo.ID != *b.CombinedTableID {
			continue
		}
		for _, memberID := range combo.TableIDs {
			if memberID == tableID {
				return true
			}
		}
	}
	return false
}

// FindOccupying возвращает первое активное бронирование, занимающее указанное
// время в указанную дату, или nil, если таких нет
//
// Проверка не учитывает стол: при построении сетки по столам вызывающая
// сторона обязана предварительно отфильтровать bookings по нужному столу,
// иначе бронирования других столов дадут ложные конфликты
func FindOccupying(bookings []*Booking, date time.Time, t types.TimeString) *Booking {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if !SameDay(b.BookingDate, date) {
			continue
		}
		if b.OccupiesAt(t) {
			return b
		}
	}
	return nil
}

// SameDay проверяет, что две даты относятся к одному календарному дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateInPast проверяет, что дата раньше сегодняшнего дня.
//
// Сравниваются только календарные компоненты: date приходит из запроса как
// полночь UTC, а now — в часовом поясе ресторана, поэтому сравнивать их как
// моменты времени нельзя
func DateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

// DateBeyondLimit проверяет, что дата дальше, чем за days дней от сегодняшнего
// дня. Как и в DateInPast, аргументы могут быть в разных часовых поясах,
// поэтому оба приводятся к календарным дням в одной локации
func DateBeyondLimit(date, now time.Time, days int) bool {
	limit := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, days)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.After(limit)
}

// RestaurantBookingsFilter фильтр для получения бронирований ресторана
type RestaurantBookingsFilter struct {
	RestaurantID    int64          // Обязательный параметр
	TableID         *int64         // Фильтр по столу (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
