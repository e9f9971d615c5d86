package create_booking

import (
	"errors"
	"net/http"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	createBooking "github.com/tablebook/reservation-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidParams         = "некорректные параметры запроса"
	msgInvalidBookingDate    = "некорректная дата бронирования"
	msgDateTooFar            = "дата бронирования слишком далеко в будущем"
	msgRestaurantClosed      = "ресторан закрыт в выбранную дату"
	msgOutsideOperatingHours = "выбранное время вне часов работы ресторана"
	msgTooLateToBook         = "слишком поздно для бронирования этого слота"
	msgInsufficientCapacity  = "выбранная посадка не вмещает компанию гостей"
	msgSlotConflict          = "стол уже забронирован на это время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	guestID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(guestID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: guest_id=%d, restaurant_id=%d, error=%v",
				guestID, req.RestaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: guest_id=%d, restaurant_id=%d",
				guestID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: guest_id=%d, restaurant_id=%d",
				guestID, req.RestaurantID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrRestaurantClosed):
			h.logger.Warn("POST /bookings - Restaurant closed: guest_id=%d, restaurant_id=%d, date=%s",
				guestID, req.RestaurantID, req.Date)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgRestaurantClosed)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: guest_id=%d, restaurant_id=%d, start_time=%s",
				guestID, req.RestaurantID, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideOperatingHours)

		case errors.Is(err, createBooking.ErrBookingCutoff):
			h.logger.Warn("POST /bookings - Too late to book: guest_id=%d, restaurant_id=%d, start_time=%s",
				guestID, req.RestaurantID, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInsufficientCapacity):
			h.logger.Warn("POST /bookings - Insufficient capacity: guest_id=%d, restaurant_id=%d, party_size=%d",
				guestID, req.RestaurantID, req.PartySize)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInsufficientCapacity)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: guest_id=%d, restaurant_id=%d, start_time=%s",
				guestID, req.RestaurantID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: guest_id=%d, restaurant_id=%d, error=%v",
				guestID, req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, guest_id=%d, restaurant_id=%d, code=%s",
		result.ID, guestID, req.RestaurantID, result.ConfirmationCode)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
