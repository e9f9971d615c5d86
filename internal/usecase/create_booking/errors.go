package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrRestaurantClosed возвращается, когда ресторан закрыт в указанную дату
	ErrRestaurantClosed = errors.New("create_booking: restaurant is closed on this date")

	// ErrOutsideOperatingHours возвращается, когда время вне рабочего интервала
	ErrOutsideOperatingHours = errors.New("create_booking: time is outside operating hours")

	// ErrBookingCutoff возвращается при нарушении минимального срока до бронирования
	ErrBookingCutoff = errors.New("create_booking: too late to book this slot")

	// ErrInsufficientCapacity возвращается, когда посадка не вмещает компанию
	ErrInsufficientCapacity = errors.New("create_booking: insufficient table capacity")

	// ErrSlotConflict возвращается, когда стол уже занят на это время
	ErrSlotConflict = errors.New("create_booking: table is already booked at this time")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
