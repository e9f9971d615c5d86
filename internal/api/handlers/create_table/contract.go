package create_table

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

type TableService interface {
	CreateTable(ctx context.Context, restaurantID int64, req *models.CreateTableRequest) (*models.TableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
