package domain

// Default booking policy values
const (
	DefaultSlotStepMinutes    = 30
	DefaultDurationMinutes    = 120 // 2 hours per party
	DefaultCutoffMinutes      = 0   // no lead-time requirement
	DefaultAdvanceBookingDays = 0   // 0 = unlimited
	DefaultTimezone           = "UTC"
	CalendarGridStepMinutes   = 60 // coarse hourly grid for the calendar view
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MinDurationMinutes          = 15
	MaxDurationMinutes          = 600
	MinCutoffMinutes            = 0
	MaxCutoffMinutes            = 10080 // 1 week
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MaxPartySize                = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MinCombinedTables           = 2
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RejectionReason машиночитаемая причина отказа в бронировании
// Отказы - ожидаемый результат проверки, а не ошибки: наружу они
// возвращаются структурой {allowed, reason}, никогда как error
type RejectionReason string

const (
	ReasonRestaurantClosed      RejectionReason = "restaurant_closed"
	ReasonOutsideOperatingHours RejectionReason = "outside_operating_hours"
	ReasonBookingCutoff         RejectionReason = "booking_cutoff"
	ReasonInsufficientCapacity  RejectionReason = "insufficient_capacity"
	ReasonSlotConflict          RejectionReason = "slot_conflict"
)

// InactiveStatuses список статусов неактивных бронирований
// Используется при фильтрации для проверки занятости столов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByGuest,
	StatusCancelledByStaff,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusSeated,
	StatusCompleted,
}
