package get_available_slots

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	getAvailableSlots "github.com/tablebook/reservation-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	RestaurantID int64           `json:"restaurantId"`
	Grid         string          `json:"grid"`
	Slots        []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time           string  `json:"time"`
	Label          string  `json:"label"`
	AvailableSpots int     `json:"availableSpots"`
	TotalSpots     int     `json:"totalSpots"`
	FreeTableIDs   []int64 `json:"freeTableIds"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(restaurantID int64, dateStr, gridStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	// По умолчанию мелкая сетка формы бронирования
	grid := getAvailableSlots.GridStep
	if gridStr != "" {
		grid = getAvailableSlots.Grid(gridStr)
	}

	return &getAvailableSlots.Request{
		RestaurantID: restaurantID,
		Date:         date,
		Grid:         grid,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:           slot.Time.String(),
			Label:          slot.Label,
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
			FreeTableIDs:   slot.FreeTableIDs,
		}
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		RestaurantID: resp.RestaurantID,
		Grid:         string(resp.Grid),
		Slots:        slots,
	}
}
