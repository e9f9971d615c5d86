package create_booking

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	createBooking "github.com/tablebook/reservation-service/internal/usecase/create_booking"
	"github.com/tablebook/reservation-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RestaurantID    int64   `json:"restaurantId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "19:00"
	EndTime         *string `json:"endTime,omitempty"`
	PartySize       int     `json:"partySize"`
	TableID         *int64  `json:"tableId,omitempty"`
	CombinedTableID *int64  `json:"combinedTableId,omitempty"`
	GuestName       *string `json:"guestName,omitempty"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	RestaurantID     int64   `json:"restaurantId"`
	GuestID          int64   `json:"guestId"`
	TableID          *int64  `json:"tableId,omitempty"`
	CombinedTableID  *int64  `json:"combinedTableId,omitempty"`
	BookingDate      string  `json:"bookingDate"`
	StartTime        string  `json:"startTime"`
	EndTime          *string `json:"endTime,omitempty"`
	PartySize        int     `json:"partySize"`
	Status           string  `json:"status"`
	ConfirmationCode string  `json:"confirmationCode"`
	GuestName        *string `json:"guestName,omitempty"`
	GuestPhone       *string `json:"guestPhone,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// ID гостя приходит из контекста аутентификации, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(guestID int64) (*createBooking.Request, error) {
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

	req := &createBooking.Request{
		RestaurantID: r.RestaurantID,
		GuestID:      guestID,
		Date:         date,
		StartTime:    startTime,
		PartySize:    r.PartySize,
		Selection:    toSelection(r.TableID, r.CombinedTableID),
		GuestName:    r.GuestName,
		GuestPhone:   r.GuestPhone,
		Notes:        r.Notes,
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	response := &BookingResponse{
		ID:               resp.ID,
		RestaurantID:     resp.RestaurantID,
		GuestID:          resp.GuestID,
		TableID:          resp.TableID,
		CombinedTableID:  resp.CombinedTableID,
		BookingDate:      resp.BookingDate.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		PartySize:        resp.PartySize,
		Status:           resp.Status,
		ConfirmationCode: resp.ConfirmationCode,
		GuestName:        resp.GuestName,
		GuestPhone:       resp.GuestPhone,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.EndTime != nil {
		endTime := resp.EndTime.String()
		response.EndTime = &endTime
	}

	return response
}
