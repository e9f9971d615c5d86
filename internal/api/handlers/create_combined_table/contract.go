package create_combined_table

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

type TableService interface {
	CreateCombined(ctx context.Context, restaurantID int64, req *models.CreateCombinedRequest) (*models.CombinedTableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
