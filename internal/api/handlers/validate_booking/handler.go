package validate_booking

import (
	"errors"
	"net/http"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	validateBooking "github.com/tablebook/reservation-service/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidParams      = "некорректные параметры запроса"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
// Отказ проверки - не ошибка: ответ всегда 200 с {allowed, reason, message}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/validate - Invalid input: restaurant_id=%d, error=%v",
				req.RestaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, validateBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings/validate - Date too far in future: restaurant_id=%d, date=%s",
				req.RestaurantID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("POST /bookings/validate - Failed to validate booking: restaurant_id=%d, error=%v",
				req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/validate - Validation completed: restaurant_id=%d, allowed=%t, reason=%s",
		req.RestaurantID, result.Allowed, result.Reason)
	handlers.RespondJSON(w, http.StatusOK, result)
}
