package list_combined_tables

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablebook/reservation-service/internal/api/handlers"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/combined-tables
// Query params: includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/combined-tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Парсим includeInactive если указан
	includeInactive := false
	if includeInactiveStr := r.URL.Query().Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err = strconv.ParseBool(includeInactiveStr)
		if err != nil {
			h.logger.Warn("GET /restaurants/{id}/combined-tables - Invalid includeInactive value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	// Получаем список комбинаций
	result, err := h.service.ListCombined(r.Context(), restaurantID, includeInactive)
	if err != nil {
		h.logger.Error("GET /restaurants/{id}/combined-tables - Failed to list combined tables: restaurant_id=%d, error=%v",
			restaurantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /restaurants/{id}/combined-tables - Combined tables retrieved successfully: restaurant_id=%d, count=%d",
		restaurantID, len(result.CombinedTables))
	handlers.RespondJSON(w, http.StatusOK, result)
}
