package delete_combined_table

import (
	"context"
)

type TableService interface {
	DeleteCombined(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
