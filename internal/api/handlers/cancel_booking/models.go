package cancel_booking

import (
	"github.com/tablebook/reservation-service/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// Пользователь и его роль приходят из контекста аутентификации
func (r *CancelBookingRequest) ToServiceRequest(userID int64, isStaff bool) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		IsStaff:            isStaff,
		CancellationReason: r.CancellationReason,
	}
}
