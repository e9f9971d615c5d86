package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/domain"
	bookingRepo "github.com/tablebook/reservation-service/internal/infra/storage/booking"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
	"github.com/tablebook/reservation-service/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	tableRepo    TableRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
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
	txManager TransactionManager,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tableRepo:    tableRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверки и вставка выполняются в сериализуемой транзакции: чтение
// бронирований даты блокирует строки (FOR UPDATE), а exclusion constraint БД
// на пересечение интервалов остается последней линией защиты от двойного
// бронирования при конкурентных запросах
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: restaurant=%d, guest=%d, date=%s, time=%s, partySize=%d",
		req.RestaurantID, req.GuestID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем политику бронирования ресторана
	settings, err := uc.settingsRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.RestaurantID)
		uc.logger.Info("CreateBooking: using default settings for restaurant=%d", req.RestaurantID)
	}

	// 3. Текущее время в часовом поясе ресторана
	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("CreateBooking: invalid timezone %q: %v", settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid restaurant timezone: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 4. Валидация даты с учетом ограничения глубины бронирования
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 5. Выводим время окончания из политики, если гость его не указал
	endTime := deriveEndTime(req.StartTime, req.EndTime, settings.DefaultDurationMinutes)

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем проверки и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Разрешаем правило рабочих часов на дату
		rules, err := uc.scheduleRepo.GetByRestaurant(txCtx, req.RestaurantID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get opening hours: %v", err)
			return fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
		}

		rule := domain.ResolveRule(rules, req.Date)
		if rule == nil || !rule.IsOpen {
			uc.logger.Warn("CreateBooking: restaurant %d is closed on %s",
				req.RestaurantID, req.Date.Format(domain.DateFormat))
			return ErrRestaurantClosed
		}

		// 6.2. Начало строго внутри рабочего интервала: open включительно, close нет
		if !rule.ContainsTime(req.StartTime) {
			uc.logger.Warn("CreateBooking: time %s is outside operating hours %s-%s",
				req.StartTime, rule.OpenTime, rule.CloseTime)
			return fmt.Errorf("%w: operating hours are %s - %s", ErrOutsideOperatingHours, rule.OpenTime, rule.CloseTime)
		}

		// 6.3. Минимальный срок до бронирования
		if err := validateBookingTime(req.Date, req.StartTime, now, settings.CutoffMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 6.4. Загружаем активные столы и комбинации
		tables, err := uc.tableRepo.ListTables(txCtx, req.RestaurantID, false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list tables: %v", err)
			return fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
		}

		combinations, err := uc.tableRepo.ListCombined(txCtx, req.RestaurantID, false)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list combined tables: %v", err)
			return fmt.Errorf("%w: failed to list combined tables: %v", ErrInternal, err)
		}

		// 6.5. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		filter := domain.RestaurantBookingsFilter{
			RestaurantID:    req.RestaurantID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByRestaurantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.6. Подбираем посадку
		assignment, err := uc.resolveSeating(req, tables, combinations, bookings, endTime)
		if err != nil {
			return err
		}

		// 6.7. Создаем бронирование
		booking := &domain.Booking{
			RestaurantID:     req.RestaurantID,
			GuestID:          req.GuestID,
			TableID:          assignment.TableID,
			CombinedTableID:  assignment.CombinedTableID,
			BookingDate:      req.Date,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			PartySize:        req.PartySize,
			Status:           domain.StatusConfirmed,
			ConfirmationCode: generateConfirmationCode(),
			GuestName:        req.GuestName,
			GuestPhone:       req.GuestPhone,
			Notes:            req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint БД: конкурентная запись успела занять интервал
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: concurrent writer took the slot: %v", err)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 7. Сбрасываем кеш доступности на эту дату
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, req.RestaurantID, req.Date.Format(domain.DateFormat))
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s", result.ID, result.ConfirmationCode)

	// Конвертируем в response
	return &Response{
		ID:               result.ID,
		RestaurantID:     result.RestaurantID,
		GuestID:          result.GuestID,
		TableID:          result.TableID,
		CombinedTableID:  result.CombinedTableID,
		BookingDate:      result.BookingDate,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		PartySize:        result.PartySize,
		Status:           string(result.Status),
		ConfirmationCode: result.ConfirmationCode,
		GuestName:        result.GuestName,
		GuestPhone:       result.GuestPhone,
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// resolveSeating подбирает посадку для компании: проверяет явный выбор
// оператора или выполняет авто-назначение (наименьший достаточный свободный
// стол, затем наименьшая достаточная комбинация)
func (uc *UseCase) resolveSeating(
	req *Request,
	tables []*domain.Table,
	combinations []*domain.CombinedTable,
	bookings []*domain.Booking,
	endTime *types.TimeString,
) (domain.AllocationResult, error) {
	isTableFree := func(tableID int64) bool {
		return !tableOccupied(tableID, bookings, combinations, req.Date, req.StartTime, endTime)
	}

	alloc := domain.Allocate(req.PartySize, tables, combinations, req.Selection)

	switch alloc.Status {
	case domain.AllocationRejected:
		uc.logger.Warn("CreateBooking: selection does not fit party of %d (available %d)",
			alloc.Required, alloc.Available)
		return alloc, fmt.Errorf("%w: seats %d, party size %d", ErrInsufficientCapacity, alloc.Available, alloc.Required)

	case domain.AllocationAssigned:
		// Явный выбор: проверяем занятость назначенной посадки
		memberIDs, err := seatingMembers(alloc, combinations)
		if err != nil {
			return alloc, err
		}
		for _, tableID := range memberIDs {
			if !isTableFree(tableID) {
				uc.logger.Warn("CreateBooking: selected seating is occupied, table=%d", tableID)
				return alloc, ErrSlotConflict
			}
		}
		return alloc, nil

	default:
		// Авто-назначение
		auto := domain.AutoAssign(req.PartySize, tables, combinations, isTableFree)
		if auto.Status == domain.AllocationRejected {
			// Компания не влезает даже в пустой ресторан - нехватка вместимости,
			// иначе подходящая посадка существует, но занята
			if maxSeatingCapacity(tables, combinations) < req.PartySize {
				uc.logger.Warn("CreateBooking: no seating fits party of %d", req.PartySize)
				return auto, fmt.Errorf("%w: largest seating fits %d, party size %d",
					ErrInsufficientCapacity, auto.Available, req.PartySize)
			}
			uc.logger.Warn("CreateBooking: all sufficient seatings are occupied for party of %d", req.PartySize)
			return auto, ErrSlotConflict
		}
		return auto, nil
	}
}

// seatingMembers возвращает столы, которые займет назначенная посадка
func seatingMembers(alloc domain.AllocationResult, combinations []*domain.CombinedTable) ([]int64, error) {
	if alloc.TableID != nil {
		return []int64{*alloc.TableID}, nil
	}
	if alloc.CombinedTableID != nil {
		for _, c := range combinations {
			if c.ID == *alloc.CombinedTableID {
				return c.TableIDs, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: assigned seating not found", ErrInternal)
}
