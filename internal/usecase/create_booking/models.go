package create_booking

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RestaurantID int64                  // ID ресторана
	GuestID      int64                  // ID гостя
	Date         time.Time              // Дата бронирования (без времени)
	StartTime    types.TimeString       // Время начала
	EndTime      *types.TimeString      // Время окончания (nil = вывести из настроек)
	PartySize    int                    // Размер компании гостей
	Selection    *domain.TableSelection // Явный выбор стола/комбинации (nil = авто-назначение)

	GuestName  *string // Имя гостя (опционально)
	GuestPhone *string // Телефон гостя (опционально)
	Notes      *string // Заметки (опционально)
}

// Response модель созданного бронирования
type Response struct {
	ID               int64
	RestaurantID     int64
	GuestID          int64
	TableID          *int64
	CombinedTableID  *int64
	BookingDate      time.Time
	StartTime        types.TimeString
	EndTime          *types.TimeString
	PartySize        int
	Status           string
	ConfirmationCode string
	GuestName        *string
	GuestPhone       *string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
