package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tablebook/reservation-service/internal/domain"
	tableRepo "github.com/tablebook/reservation-service/internal/infra/storage/table"
	"github.com/tablebook/reservation-service/internal/service/tables/models"
)

// Service сервис для управления столами и комбинациями
type Service struct {
	tableRepo TableRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, logger Logger) *Service {
	return &Service{
		tableRepo: tableRepo,
		logger:    logger,
	}
}

// CreateTable создает стол ресторана
func (s *Service) CreateTable(ctx context.Context, restaurantID int64, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("CreateTable: restaurant=%d, number=%s, capacity=%d", restaurantID, req.TableNumber, req.Capacity)

	if strings.TrimSpace(req.TableNumber) == "" {
		return nil, fmt.Errorf("%w: table number is required", ErrInvalidInput)
	}
	if req.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	table := &domain.Table{
		RestaurantID: restaurantID,
		TableNumber:  strings.TrimSpace(req.TableNumber),
		Capacity:     req.Capacity,
		IsActive:     true,
	}

	created, err := s.tableRepo.CreateTable(ctx, table)
	if err != nil {
		if errors.Is(err, tableRepo.ErrDuplicateTableNumber) {
			s.logger.Warn("CreateTable: duplicate number %s in restaurant=%d", req.TableNumber, restaurantID)
			return nil, ErrDuplicateTableNumber
		}
		s.logger.Error("CreateTable: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTable: successfully created table id=%d", created.ID)
	return models.FromDomainTable(created), nil
}

// ListTables получает столы ресторана
func (s *Service) ListTables(ctx context.Context, restaurantID int64, includeInactive bool) (*models.TableListResponse, error) {
	s.logger.Info("ListTables: restaurant=%d, includeInactive=%v", restaurantID, includeInactive)

	tables, err := s.tableRepo.ListTables(ctx, restaurantID, includeInactive)
	if err != nil {
		s.logger.Error("ListTables: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ListTables - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTableList(tables), nil
}

// UpdateTable частично обновляет стол
// При изменении вместимости пересчитывает сохраненные суммы комбинаций,
// в которых стол участвует (сохраненная сумма - кеш для отображения,
// аллокация всегда считает по живым данным)
func (s *Service) UpdateTable(ctx context.Context, tableID int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("UpdateTable: table=%d", tableID)

	table, err := s.tableRepo.GetTableByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("UpdateTable: table id=%d not found", tableID)
			return nil, ErrTableNotFound
		}
		s.logger.Error("UpdateTable: repository error for table id=%d: %v", tableID, err)
		return nil, fmt.Errorf("%w: UpdateTable - repository error: %v", ErrInternal, err)
	}

	capacityChanged := false

	if req.TableNumber != nil {
		if strings.TrimSpace(*req.TableNumber) == "" {
			return nil, fmt.Errorf("%w: table number must not be empty", ErrInvalidInput)
		}
		table.TableNumber = strings.TrimSpace(*req.TableNumber)
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
		}
		capacityChanged = table.Capacity != *req.Capacity
		table.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		table.IsActive = *req.IsActive
	}

	if err := s.tableRepo.UpdateTable(ctx, table); err != nil {
		if errors.Is(err, tableRepo.ErrDuplicateTableNumber) {
			return nil, ErrDuplicateTableNumber
		}
		s.logger.Error("UpdateTable: repository error for table id=%d: %v", tableID, err)
		return nil, fmt.Errorf("%w: UpdateTable - repository error: %v", ErrInternal, err)
	}

	if capacityChanged {
		if err := s.tableRepo.RefreshStoredCapacities(ctx, tableID); err != nil {
			// Не фатально: сохраненная сумма - кеш, аллокация на него не опирается
			s.logger.Warn("UpdateTable: failed to refresh combined capacities for table id=%d: %v", tableID, err)
		}
	}

	s.logger.Info("UpdateTable: successfully updated table id=%d", tableID)
	return models.FromDomainTable(table), nil
}

// CreateCombined создает комбинацию столов
// Суммарная вместимость вычисляется один раз из вместимостей столов-участников
// на момент создания и сохраняется как кеш для отображения
func (s *Service) CreateCombined(ctx context.Context, restaurantID int64, req *models.CreateCombinedRequest) (*models.CombinedTableResponse, error) {
	s.logger.Info("CreateCombined: restaurant=%d, name=%s, tables=%v", restaurantID, req.Name, req.TableIDs)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.TableIDs) < domain.MinCombinedTables {
		return nil, fmt.Errorf("%w: combination requires at least %d tables", ErrInvalidInput, domain.MinCombinedTables)
	}

	seen := make(map[int64]bool, len(req.TableIDs))
	totalCapacity := 0

	for _, tableID := range req.TableIDs {
		if seen[tableID] {
			return nil, fmt.Errorf("%w: duplicate table id=%d", ErrInvalidInput, tableID)
		}
		seen[tableID] = true

		table, err := s.tableRepo.GetTableByID(ctx, tableID)
		if err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				s.logger.Warn("CreateCombined: table id=%d not found", tableID)
				return nil, ErrTableNotFound
			}
			s.logger.Error("CreateCombined: repository error for table id=%d: %v", tableID, err)
			return nil, fmt.Errorf("%w: CreateCombined - repository error: %v", ErrInternal, err)
		}
		if table.RestaurantID != restaurantID {
			return nil, fmt.Errorf("%w: table id=%d belongs to another restaurant", ErrInvalidInput, tableID)
		}
		if !table.IsActive {
			s.logger.Warn("CreateCombined: table id=%d is inactive", tableID)
			return nil, ErrTableInactive
		}

		totalCapacity += table.Capacity
	}

	combo := &domain.CombinedTable{
		RestaurantID:  restaurantID,
		Name:          strings.TrimSpace(req.Name),
		TableIDs:      req.TableIDs,
		TotalCapacity: totalCapacity,
		IsActive:      true,
	}

	created, err := s.tableRepo.CreateCombined(ctx, combo)
	if err != nil {
		s.logger.Error("CreateCombined: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCombined - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateCombined: successfully created combination id=%d, capacity=%d", created.ID, totalCapacity)
	return models.FromDomainCombined(created), nil
}

// ListCombined получает комбинации столов ресторана
func (s *Service) ListCombined(ctx context.Context, restaurantID int64, includeInactive bool) (*models.CombinedTableListResponse, error) {
	s.logger.Info("ListCombined: restaurant=%d, includeInactive=%v", restaurantID, includeInactive)

	combos, err := s.tableRepo.ListCombined(ctx, restaurantID, includeInactive)
	if err != nil {
		s.logger.Error("ListCombined: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ListCombined - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCombinedList(combos), nil
}

// DeleteCombined удаляет комбинацию столов
// Столы-участники остаются нетронутыми
func (s *Service) DeleteCombined(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCombined: combination=%d", id)

	if err := s.tableRepo.DeleteCombined(ctx, id); err != nil {
		if errors.Is(err, tableRepo.ErrCombinedTableNotFound) {
			s.logger.Warn("DeleteCombined: combination id=%d not found", id)
			return ErrCombinedTableNotFound
		}
		s.logger.Error("DeleteCombined: repository error for combination id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCombined - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteCombined: successfully deleted combination id=%d", id)
	return nil
}
