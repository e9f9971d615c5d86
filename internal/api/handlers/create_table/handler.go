package create_table

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
	msgInvalidTable        = "некорректные параметры стола"
	msgDuplicateNumber     = "номер стола уже используется"
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

// Handle POST /api/v1/restaurants/{restaurantId}/tables
// Управление столами доступно только сотрудникам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем restaurantId из URL
	vars := mux.Vars(r)
	restaurantIDStr := vars["restaurantId"]

	restaurantID, err := strconv.ParseInt(restaurantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /restaurants/{id}/tables - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /restaurants/{id}/tables - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("POST /restaurants/{id}/tables - Access denied: restaurant_id=%d, user_id=%d",
			restaurantID, userID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	// Декодируем body
	var req models.CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restaurants/{id}/tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем стол
	table, err := h.service.CreateTable(r.Context(), restaurantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrInvalidInput):
			h.logger.Warn("POST /restaurants/{id}/tables - Invalid table: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondBadRequest(w, msgInvalidTable)

		case errors.Is(err, tables.ErrDuplicateTableNumber):
			h.logger.Warn("POST /restaurants/{id}/tables - Duplicate table number: restaurant_id=%d, number=%s",
				restaurantID, req.TableNumber)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateNumber)

		default:
			h.logger.Error("POST /restaurants/{id}/tables - Failed to create table: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /restaurants/{id}/tables - Table created successfully: table_id=%d, restaurant_id=%d, user_id=%d",
		table.ID, restaurantID, userID)
	handlers.RespondJSON(w, http.StatusCreated, table)
}
