package list_tables

import (
	"context"

	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

type TableService interface {
	ListTables(ctx context.Context, restaurantID int64, includeInactive bool) (*models.TableListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
