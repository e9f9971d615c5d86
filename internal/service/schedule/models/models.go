package models

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// Request модели

// DayRule правило рабочих часов одного дня недели (0=воскресенье .. 6=суббота)
type DayRule struct {
	DayOfWeek int    `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`  // "HH:MM", обязательно при isOpen
	CloseTime string `json:"closeTime,omitempty"` // "HH:MM", обязательно при isOpen
}

// ReplaceWeekRequest запрос на полную замену недельного расписания
type ReplaceWeekRequest struct {
	Rules []DayRule `json:"rules"`
}

// UpdateSettingsRequest запрос на обновление политики бронирования (частичное)
type UpdateSettingsRequest struct {
	SlotStepMinutes        *int    `json:"slotStepMinutes,omitempty"`
	DefaultDurationMinutes *int    `json:"defaultDurationMinutes,omitempty"`
	CutoffMinutes          *int    `json:"cutoffMinutes,omitempty"`
	AdvanceBookingDays     *int    `json:"advanceBookingDays,omitempty"`
	Timezone               *string `json:"timezone,omitempty"`
}

// Response модели

// WeekResponse недельное расписание ресторана
type WeekResponse struct {
	RestaurantID int64     `json:"restaurantId"`
	Rules        []DayRule `json:"rules"`
}

// SettingsResponse политика бронирования ресторана
type SettingsResponse struct {
	RestaurantID           int64     `json:"restaurantId"`
	SlotStepMinutes        int       `json:"slotStepMinutes"`
	DefaultDurationMinutes int       `json:"defaultDurationMinutes"`
	CutoffMinutes          int       `json:"cutoffMinutes"`
	AdvanceBookingDays     int       `json:"advanceBookingDays"`
	Timezone               string    `json:"timezone"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// Методы конвертации

// ToDomainRule конвертирует DTO в domain правило
func (r DayRule) ToDomainRule(restaurantID int64) *domain.OpeningHoursRule {
	return &domain.OpeningHoursRule{
		RestaurantID: restaurantID,
		DayOfWeek:    r.DayOfWeek,
		IsOpen:       r.IsOpen,
		OpenTime:     types.TimeString(r.OpenTime),
		CloseTime:    types.TimeString(r.CloseTime),
	}
}

// FromDomainRule конвертирует domain правило в DTO
func FromDomainRule(rule *domain.OpeningHoursRule) DayRule {
	day := DayRule{
		DayOfWeek: rule.DayOfWeek,
		IsOpen:    rule.IsOpen,
	}
	if rule.IsOpen {
		day.OpenTime = rule.OpenTime.String()
		day.CloseTime = rule.CloseTime.String()
	}
	return day
}

// FromDomainWeek конвертирует список domain правил в недельное расписание
func FromDomainWeek(restaurantID int64, rules []*domain.OpeningHoursRule) *WeekResponse {
	resp := &WeekResponse{
		RestaurantID: restaurantID,
		Rules:        make([]DayRule, 0, len(rules)),
	}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, FromDomainRule(rule))
	}
	return resp
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.RestaurantSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		RestaurantID:           s.RestaurantID,
		SlotStepMinutes:        s.SlotStepMinutes,
		DefaultDurationMinutes: s.DefaultDurationMinutes,
		CutoffMinutes:          s.CutoffMinutes,
		AdvanceBookingDays:     s.AdvanceBookingDays,
		Timezone:               s.Timezone,
		UpdatedAt:              s.UpdatedAt,
	}
}
