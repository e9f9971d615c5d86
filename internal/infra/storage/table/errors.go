package table

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table.repository: table not found")

	// ErrCombinedTableNotFound возвращается, когда комбинация столов не найдена
	ErrCombinedTableNotFound = errors.New("table.repository: combined table not found")

	// ErrDuplicateTableNumber возвращается при попытке создать стол с занятым номером
	ErrDuplicateTableNumber = errors.New("table.repository: duplicate table number")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("table.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("table.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("table.repository: failed to scan row")
)
