package domain

import "time"

// RestaurantSettings represents the booking policy of a restaurant
type RestaurantSettings struct {
	ID           int64
	RestaurantID int64

	SlotStepMinutes        int    // шаг слотов в форме бронирования
	DefaultDurationMinutes int    // длительность брони, когда гость не указал окончание
	CutoffMinutes          int    // минимальное время до начала слота, 0 = без ограничения
	AdvanceBookingDays     int    // 0 = без ограничения
	Timezone               string // IANA-идентификатор часового пояса ресторана

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultSettings возвращает политику по умолчанию для ресторана без настроек
func DefaultSettings(restaurantID int64) *RestaurantSettings {
	return &RestaurantSettings{
		RestaurantID:           restaurantID,
		SlotStepMinutes:        DefaultSlotStepMinutes,
		DefaultDurationMinutes: DefaultDurationMinutes,
		CutoffMinutes:          DefaultCutoffMinutes,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
		Timezone:               DefaultTimezone,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *RestaurantSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// HasCutoff returns true if a minimum lead time is required before a slot
func (s *RestaurantSettings) HasCutoff() bool {
	return s.CutoffMinutes > 0
}

// Location возвращает часовой пояс ресторана
// Даты бронирований - календарные даты в местном времени ресторана,
// поэтому "сейчас" для проверок переводится в этот пояс
func (s *RestaurantSettings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}
