package get_opening_hours

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, restaurantID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
