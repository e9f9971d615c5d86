package update_settings

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateSettings(ctx context.Context, restaurantID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
