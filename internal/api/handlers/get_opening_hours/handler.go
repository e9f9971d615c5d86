package get_opening_hours

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablebook/reservation-service/internal/api/handlers"
)

const msgInvalidRestaurantID = "некорректный ID ресторана"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/opening-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/opening-hours - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Получаем недельное расписание
	week, err := h.service.GetWeek(r.Context(), restaurantID)
	if err != nil {
		h.logger.Error("GET /restaurants/{id}/opening-hours - Failed to get schedule: restaurant_id=%d, error=%v",
			restaurantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /restaurants/{id}/opening-hours - Schedule retrieved successfully: restaurant_id=%d, rules_count=%d",
		restaurantID, len(week.Rules))
	handlers.RespondJSON(w, http.StatusOK, week)
}
