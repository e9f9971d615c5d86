package validate_booking

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	validateBooking "github.com/tablebook/reservation-service/internal/usecase/validate_booking"
	"github.com/tablebook/reservation-service/pkg/types"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	RestaurantID    int64   `json:"restaurantId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "19:00"
	EndTime         *string `json:"endTime,omitempty"`
	PartySize       int     `json:"partySize"`
	TableID         *int64  `json:"tableId,omitempty"`
	CombinedTableID *int64  `json:"combinedTableId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время начала
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &validateBooking.Request{
		RestaurantID: r.RestaurantID,
		Date:         date,
		StartTime:    startTime,
		PartySize:    r.PartySize,
		Selection:    toSelection(r.TableID, r.CombinedTableID),
	}

	// Парсим время окончания, если указано
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// toSelection строит явный выбор посадки из полей запроса
// Стол имеет приоритет над комбинацией, если указаны оба
func toSelection(tableID, combinedTableID *int64) *domain.TableSelection {
	switch {
	case tableID != nil:
		return &domain.TableSelection{Kind: domain.SelectionTable, ID: *tableID}
	case combinedTableID != nil:
		return &domain.TableSelection{Kind: domain.SelectionCombination, ID: *combinedTableID}
	default:
		return nil
	}
}
