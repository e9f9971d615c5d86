package tables

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table not found")

	// ErrCombinedTableNotFound возвращается, когда комбинация столов не найдена
	ErrCombinedTableNotFound = errors.New("combined table not found")

	// ErrDuplicateTableNumber возвращается при попытке создать стол с занятым номером
	ErrDuplicateTableNumber = errors.New("table number is already in use")

	// ErrTableInactive возвращается при попытке включить неактивный стол в комбинацию
	ErrTableInactive = errors.New("table is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
