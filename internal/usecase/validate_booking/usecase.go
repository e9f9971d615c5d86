package validate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/domain"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
)

// UseCase use case предварительной серверной проверки бронирования
//
// Выполняет ту же последовательность проверок, что и создание бронирования,
// но без транзакции и без записи: отказ возвращается структурированным
// результатом до того, как гость отправит запрос на создание. Авторитетной
// остается проверка при создании - между pre-check и commit данные могли
// измениться
type UseCase struct {
	bookingRepo  BookingRepository
	tableRepo    TableRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tableRepo TableRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tableRepo:    tableRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateBooking: restaurant=%d, date=%s, time=%s, partySize=%d",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем политику бронирования ресторана
	settings, err := uc.settingsRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("ValidateBooking: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.RestaurantID)
	}

	// 3. Текущее время в часовом поясе ресторана
	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("ValidateBooking: invalid timezone %q: %v", settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid restaurant timezone: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now().In(loc)

	// 4. Валидация даты с учетом ограничения глубины бронирования
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("ValidateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 5. Разрешаем правило рабочих часов на дату
	rules, err := uc.scheduleRepo.GetByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get opening hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get opening hours: %v", ErrInternal, err)
	}
	rule := domain.ResolveRule(rules, req.Date)

	// 6. Загружаем активные столы и комбинации
	tables, err := uc.tableRepo.ListTables(ctx, req.RestaurantID, false)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	combinations, err := uc.tableRepo.ListCombined(ctx, req.RestaurantID, false)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to list combined tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list combined tables: %v", ErrInternal, err)
	}

	// 7. Загружаем активные бронирования на дату
	filter := domain.RestaurantBookingsFilter{
		RestaurantID:    req.RestaurantID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ValidateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Прогоняем проверки guard по снимкам данных
	if rejected := runGuard(req, rule, tables, combinations, bookings, now, settings.CutoffMinutes); rejected != nil {
		uc.logger.Info("ValidateBooking: rejected, reason=%s", rejected.Reason)
		return rejected, nil
	}

	uc.logger.Info("ValidateBooking: allowed for restaurant=%d, date=%s, time=%s",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.StartTime)

	return allowed(), nil
}
