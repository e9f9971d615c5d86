package domain

import (
	"fmt"
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// OpeningHoursRule describes whether a restaurant is open on a weekday and
// its operating interval. At most one rule exists per weekday per restaurant
// (enforced by a unique constraint in storage).
type OpeningHoursRule struct {
	ID           int64
	RestaurantID int64
	DayOfWeek    int // 0=воскресенье .. 6=суббота
	IsOpen       bool
	OpenTime     types.TimeString
	CloseTime    types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты правила: для открытого дня open < close
func (r *OpeningHoursRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("day of week must be in [0, 6], got %d", r.DayOfWeek)
	}
	if !r.IsOpen {
		return nil
	}
	if err := r.OpenTime.Validate(); err != nil {
		return fmt.Errorf("open time: %w", err)
	}
	if err := r.CloseTime.Validate(); err != nil {
		return fmt.Errorf("close time: %w", err)
	}
	if !r.OpenTime.IsBefore(r.CloseTime) {
		return fmt.Errorf("open time %s must be before close time %s", r.OpenTime, r.CloseTime)
	}
	return nil
}

// ContainsTime возвращает true, если время попадает в рабочий интервал [open, close)
// Граница открытия включается, граница закрытия - нет
func (r *OpeningHoursRule) ContainsTime(t types.TimeString) bool {
	if !r.IsOpen {
		return false
	}
	return !r.OpenTime.IsAfter(t) && t.IsBefore(r.CloseTime)
}

// ResolveRule возвращает правило рабочих часов для дня недели указанной даты
// или nil, если правила нет (вызывающая сторона трактует это как закрытый день)
func ResolveRule(rules []*OpeningHoursRule, date time.Time) *OpeningHoursRule {
	weekday := int(date.Weekday())
	for _, rule := range rules {
		if rule.DayOfWeek == weekday {
			return rule
		}
	}
	return nil
}
