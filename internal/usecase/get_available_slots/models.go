package get_available_slots

import (
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// Grid вариант сетки слотов
type Grid string

const (
	// GridStep мелкая сетка формы бронирования (шаг из настроек ресторана)
	GridStep Grid = "step"

	// GridHourly часовая сетка для календаря
	GridHourly Grid = "hourly"
)

// Valid проверяет, что значение сетки известно
func (g Grid) Valid() bool {
	return g == GridStep || g == GridHourly
}

// Request модель запроса на получение доступных слотов
type Request struct {
	RestaurantID int64     // ID ресторана
	Date         time.Time // Дата для получения слотов (без времени)
	Grid         Grid      // Вариант сетки
}

// Response модель ответа со списком слотов и их занятостью
type Response struct {
	Date         time.Time `json:"date"`
	RestaurantID int64     `json:"restaurantId"`
	Grid         Grid      `json:"grid"`
	Slots        []Slot    `json:"slots"`
}

// Slot модель временного слота с занятостью по столам
type Slot struct {
	Time           types.TimeString `json:"time"`           // Время начала слота
	Label          string           `json:"label"`          // 12-часовое представление
	AvailableSpots int              `json:"availableSpots"` // Количество свободных столов
	TotalSpots     int              `json:"totalSpots"`     // Общее количество активных столов
	FreeTableIDs   []int64          `json:"freeTableIds"`   // Свободные столы на это время
}
