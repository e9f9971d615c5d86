package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/domain"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	tableRepo    TableRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	cache        AvailabilityCache // опционально, nil = без кеша
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tableRepo TableRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tableRepo:    tableRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: restaurant=%d, date=%s, grid=%s",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.Grid)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dateKey := req.Date.Format(domain.DateFormat)

	// 2. Проверяем кеш
	if uc.cache != nil {
		if payload, ok := uc.cache.Get(ctx, req.RestaurantID, dateKey, string(req.Grid)); ok {
			var resp Response
			if err := json.Unmarshal(payload, &resp); err == nil {
				uc.logger.Info("GetAvailableSlots: cache hit for restaurant=%d, date=%s", req.RestaurantID, dateKey)
				return &resp, nil
			}
			uc.logger.Warn("GetAvailableSlots: failed to decode cached payload, falling through")
		}
	}

	// 3. Получаем политику бронирования ресторана
	settings, err := uc.settingsRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.RestaurantID)
		uc.logger.Info("GetAvailableSlots: using default settings for restaurant=%d", req.RestaurantID)
	}

	// 4. Текущее время в часовом поясе ресторана:
	// даты бронирований - календарные даты в местном времени
	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid timezone %q: %v", settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid restaurant timezone: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 5. Валидация даты с учетом ограничения глубины бронирования
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Разрешаем правило рабочих часов на дату
	rules, err := uc.scheduleRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}

	rule := domain.ResolveRule(rules, req.Date)
	if rule == nil || !rule.IsOpen {
		uc.logger.Info("GetAvailableSlots: restaurant %d is closed on %s", req.RestaurantID, dateKey)
		return &Response{
			Date:         req.Date,
			RestaurantID: req.RestaurantID,
			Grid:         req.Grid,
			Slots:        []Slot{},
		}, nil
	}

	// 7. Генерируем слоты с нужным шагом
	slots := enumerateSlots(rule, stepForGrid(req.Grid, settings), req.Date, now, settings.CutoffMinutes)

	// 8. Загружаем активные столы и комбинации
	tables, err := uc.tableRepo.ListTables(ctx, req.RestaurantID, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	combinations, err := uc.tableRepo.ListCombined(ctx, req.RestaurantID, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list combined tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list combined tables: %v", ErrInternal, err)
	}

	// 9. Загружаем активные бронирования на дату
	filter := domain.RestaurantBookingsFilter{
		RestaurantID:    req.RestaurantID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Помечаем занятость каждого слота по столам
	resp := &Response{
		Date:         req.Date,
		RestaurantID: req.RestaurantID,
		Grid:         req.Grid,
		Slots:        markOccupancy(slots, tables, combinations, bookings, req.Date),
	}

	// 11. Сохраняем ответ в кеш
	if uc.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			uc.cache.Set(ctx, req.RestaurantID, dateKey, string(req.Grid), payload)
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for restaurant=%d, date=%s, tables=%d",
		len(resp.Slots), req.RestaurantID, dateKey, len(tables))

	return resp, nil
}
