package models

import (
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
)

// Request модели

// CreateTableRequest запрос на создание стола
type CreateTableRequest struct {
	TableNumber string `json:"tableNumber"`
	Capacity    int    `json:"capacity"`
}

// UpdateTableRequest запрос на обновление стола (частичное)
type UpdateTableRequest struct {
	TableNumber *string `json:"tableNumber,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CreateCombinedRequest запрос на создание комбинации столов
type CreateCombinedRequest struct {
	Name     string  `json:"name"`
	TableIDs []int64 `json:"tableIds"`
}

// Response модели

// TableResponse ответ с данными стола
type TableResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	TableNumber  string    `json:"tableNumber"`
	Capacity     int       `json:"capacity"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableListResponse ответ со списком столов
type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
}

// CombinedTableResponse ответ с данными комбинации столов
type CombinedTableResponse struct {
	ID            int64     `json:"id"`
	RestaurantID  int64     `json:"restaurantId"`
	Name          string    `json:"name"`
	TableIDs      []int64   `json:"tableIds"`
	TotalCapacity int       `json:"totalCapacity"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CombinedTableListResponse ответ со списком комбинаций
type CombinedTableListResponse struct {
	CombinedTables []CombinedTableResponse `json:"combinedTables"`
}

// Методы конвертации

// FromDomainTable конвертирует domain модель в DTO
func FromDomainTable(t *domain.Table) *TableResponse {
	if t == nil {
		return nil
	}
	return &TableResponse{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		TableNumber:  t.TableNumber,
		Capacity:     t.Capacity,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromDomainTableList конвертирует список domain моделей в DTO
func FromDomainTableList(tables []*domain.Table) *TableListResponse {
	resp := &TableListResponse{
		Tables: make([]TableResponse, 0, len(tables)),
	}
	for _, t := range tables {
		if tableResp := FromDomainTable(t); tableResp != nil {
			resp.Tables = append(resp.Tables, *tableResp)
		}
	}
	return resp
}

// FromDomainCombined конвертирует domain модель в DTO
func FromDomainCombined(c *domain.CombinedTable) *CombinedTableResponse {
	if c == nil {
		return nil
	}
	return &CombinedTableResponse{
		ID:            c.ID,
		RestaurantID:  c.RestaurantID,
		Name:          c.Name,
		TableIDs:      c.TableIDs,
		TotalCapacity: c.TotalCapacity,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// FromDomainCombinedList конвертирует список domain моделей в DTO
func FromDomainCombinedList(combos []*domain.CombinedTable) *CombinedTableListResponse {
	resp := &CombinedTableListResponse{
		CombinedTables: make([]CombinedTableResponse, 0, len(combos)),
	}
	for _, c := range combos {
		if comboResp := FromDomainCombined(c); comboResp != nil {
			resp.CombinedTables = append(resp.CombinedTables, *comboResp)
		}
	}
	return resp
}
