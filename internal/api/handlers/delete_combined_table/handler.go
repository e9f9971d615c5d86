package delete_combined_table

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	"github.com/tablebook/reservation-service/internal/service/tables"
)

const (
	msgInvalidCombinedID = "некорректный ID комбинации столов"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgStaffOnly         = "требуется роль сотрудника"
	msgNotFound          = "комбинация столов не найдена"
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

// Handle DELETE /api/v1/restaurants/{restaurantId}/combined-tables/{combinedTableId}
// Удаление комбинации столов доступно только сотрудникам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем combinedTableId из URL
	vars := mux.Vars(r)
	combinedIDStr := vars["combinedTableId"]

	combinedID, err := strconv.ParseInt(combinedIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /restaurants/{id}/combined-tables/{id} - Invalid combined table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCombinedID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /restaurants/{id}/combined-tables/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !middleware.IsStaff(r.Context()) {
		h.logger.Warn("DELETE /restaurants/{id}/combined-tables/{id} - Access denied: combined_id=%d, user_id=%d",
			combinedID, userID)
		handlers.RespondForbidden(w, msgStaffOnly)
		return
	}

	// Удаляем комбинацию
	err = h.service.DeleteCombined(r.Context(), combinedID)
	if err != nil {
		switch {
		case errors.Is(err, tables.ErrCombinedTableNotFound):
			h.logger.Warn("DELETE /restaurants/{id}/combined-tables/{id} - Combined table not found: combined_id=%d",
				combinedID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /restaurants/{id}/combined-tables/{id} - Failed to delete combined table: combined_id=%d, error=%v",
				combinedID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /restaurants/{id}/combined-tables/{id} - Combined table deleted successfully: combined_id=%d, user_id=%d",
		combinedID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
