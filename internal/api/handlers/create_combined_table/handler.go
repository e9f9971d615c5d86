package create_combined_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	"github.com/tablebook/reservation-service/internal/service/tables"
	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgStaffOnly           = "требуется роль сотрудника"
	msgInvalidCombination  = "некорректные параметры комбинации столов"
	msgMemberNotFound      = "стол из комбинации не найден"
	msgMemberInactive      = "стол из комбинации неактивен"
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

// Handle POST /api/v1/restaurants/{restaurantId}/combined-tables
// Создание комбинации столов доступно только сотрудникам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /restaurants/{id}/combined-tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /restaurants/{id}/combined-tables - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("POST /restaurants/{id}/combined-tables - Access denied: restaurant_id=%d, user_id=%d",
			restaurantID, userID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	// Декодируем body
	var req models.CreateCombinedRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restaurants/{id}/combined-tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем комбинацию
	combined, err := h.service.CreateCombined(r.Context(), restaurantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("POST /restaurants/{id}/combined-tables - Invalid combination: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidCombination)

		case errors.Is(err, tables.ErrTableNotFound):
			h.logger.Warn("POST /restaurants/{id}/combined-tables - Member table not found: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, tables.ErrTableInactive):
			h.logger.Warn("POST /restaurants/{id}/combined-tables - Member table inactive: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondBadRequest(w, msgMemberInactive)

		default:
			h.logger.Error("POST /restaurants/{id}/combined-tables - Failed to create combined table: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /restaurants/{id}/combined-tables - Combined table created successfully: combined_id=%d, restaurant_id=%d, user_id=%d",
		combined.ID, restaurantID, userID)
	handlers.RespondJSON(w, http.StatusCreated, combined)
}
