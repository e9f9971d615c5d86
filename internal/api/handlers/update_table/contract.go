package update_table

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

type TableService interface {
	UpdateTable(ctx context.Context, tableID int64, req *models.UpdateTableRequest) (*models.TableResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
