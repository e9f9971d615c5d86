package domain

import (
	"fmt"

	"github.com/tablebook/reservation-service/pkg/types"
)

// TimeSlot is a generated bookable start time, not persisted.
// Value is the machine form ("19:00"), Label is the 12-hour clock
// rendering for display ("7:00 PM").
type TimeSlot struct {
	Value types.TimeString
	Label string
}

// GenerateTimeSlots генерирует упорядоченную последовательность слотов
// с шагом stepMinutes от startHour:00 до endHourInclusive:00 включительно
// (последний слот - ровно endHourInclusive:00, не дальше)
//
// Функция детерминирована и без состояния: одни и те же аргументы всегда
// дают одну и ту же возрастающую последовательность. Один генератор
// обслуживает обе сетки системы: часовую для календаря (step=60)
// и мелкую для формы бронирования (например, step=30).
func GenerateTimeSlots(startHour, endHourInclusive, stepMinutes int) []TimeSlot {
	if stepMinutes <= 0 || startHour < 0 || endHourInclusive > 23 || startHour > endHourInclusive {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0, (endHourInclusive-startHour)*60/stepMinutes+1)
	for m := startHour * 60; m <= endHourInclusive*60; m += stepMinutes {
		value, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, TimeSlot{
			Value: value,
			Label: Format12Hour(value),
		})
	}
	return slots
}

// Format12Hour возвращает представление времени в 12-часовом формате
// "0:xx" -> "12:xx AM", "12:xx" -> "12:xx PM", "13:xx".."23:xx" -> "1:xx".."11:xx PM"
func Format12Hour(t types.TimeString) string {
	minutes := t.Minutes()
	hour := minutes / 60
	minute := minutes % 60

	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}

	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, minute, suffix)
}
