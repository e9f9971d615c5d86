package tables

import (
	"context"

	"github.com/tablebook/reservation-service/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error)
	GetTableByID(ctx context.Context, id int64) (*domain.Table, error)
	ListTables(ctx context.Context, restaurantID int64, includeInactive bool) ([]*domain.Table, error)
	UpdateTable(ctx context.Context, table *domain.Table) error
	CreateCombined(ctx context.Context, combo *domain.CombinedTable) (*domain.CombinedTable, error)
	GetCombinedByID(ctx context.Context, id int64) (*domain.CombinedTable, error)
	ListCombined(ctx context.Context, restaurantID int64, includeInactive bool) ([]*domain.CombinedTable, error)
	DeleteCombined(ctx context.Context, id int64) error
	RefreshStoredCapacities(ctx context.Context, tableID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
