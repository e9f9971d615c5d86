package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
	"github.com/tablebook/reservation-service/internal/service/schedule/models"
)

// Service сервис для управления расписанием и политикой бронирования
type Service struct {
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetWeek получает недельное расписание ресторана
// День без правила означает "закрыто" и в ответ не включается
func (s *Service) GetWeek(ctx context.Context, restaurantID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching opening hours for restaurant=%d", restaurantID)

	rules, err := s.scheduleRepo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(restaurantID, rules), nil
}

// ReplaceWeek полностью заменяет недельное расписание ресторана
// Не более одного правила на день недели; отсутствующий день трактуется
// как закрытый
func (s *Service) ReplaceWeek(ctx context.Context, restaurantID int64, req *models.ReplaceWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWeek: replacing opening hours for restaurant=%d, rules=%d", restaurantID, len(req.Rules))

	seen := make(map[int]bool, len(req.Rules))
	rules := make([]*domain.OpeningHoursRule, 0, len(req.Rules))

	for _, day := range req.Rules {
		if seen[day.DayOfWeek] {
			s.logger.Warn("ReplaceWeek: duplicate rule for day=%d", day.DayOfWeek)
			return nil, fmt.Errorf("%w: duplicate rule for day of week %d", ErrInvalidInput, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		rule := day.ToDomainRule(restaurantID)
		if err := rule.Validate(); err != nil {
			s.logger.Warn("ReplaceWeek: invalid rule for day=%d: %v", day.DayOfWeek, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		rules = append(rules, rule)
	}

	if err := s.scheduleRepo.ReplaceWeek(ctx, restaurantID, rules); err != nil {
		s.logger.Error("ReplaceWeek: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ReplaceWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeek: successfully replaced opening hours for restaurant=%d", restaurantID)
	return models.FromDomainWeek(restaurantID, rules), nil
}

// GetSettings получает политику бронирования ресторана
// Ресторан без сохраненной политики получает значения по умолчанию
func (s *Service) GetSettings(ctx context.Context, restaurantID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching settings for restaurant=%d", restaurantID)

	settings, err := s.settingsRepo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetSettings: restaurant=%d has no settings, using defaults", restaurantID)
			return models.FromDomainSettings(domain.DefaultSettings(restaurantID)), nil
		}
		s.logger.Error("GetSettings: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateSettings частично обновляет политику бронирования ресторана
// Неуказанные поля сохраняют текущие значения (или значения по умолчанию,
// если политика еще не сохранялась)
func (s *Service) UpdateSettings(ctx context.Context, restaurantID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for restaurant=%d", restaurantID)

	settings, err := s.settingsRepo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("UpdateSettings: repository error for restaurant=%d: %v", restaurantID, err)
			return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(restaurantID)
	}

	if err := applySettingsPatch(settings, req); err != nil {
		s.logger.Warn("UpdateSettings: invalid settings for restaurant=%d: %v", restaurantID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: successfully updated settings for restaurant=%d", restaurantID)
	return models.FromDomainSettings(updated), nil
}

// applySettingsPatch применяет частичное обновление с проверкой границ
func applySettingsPatch(settings *domain.RestaurantSettings, req *models.UpdateSettingsRequest) error {
	if req.SlotStepMinutes != nil {
		if *req.SlotStepMinutes < domain.MinSlotStepMinutes || *req.SlotStepMinutes > domain.MaxSlotStepMinutes {
			return fmt.Errorf("%w: slot step must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
		}
		settings.SlotStepMinutes = *req.SlotStepMinutes
	}

	if req.DefaultDurationMinutes != nil {
		// Ноль допустим: бронирования без окончания занимают стол до конца дня
		if *req.DefaultDurationMinutes != 0 &&
			(*req.DefaultDurationMinutes < domain.MinDurationMinutes || *req.DefaultDurationMinutes > domain.MaxDurationMinutes) {
			return fmt.Errorf("%w: default duration must be 0 or between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
		settings.DefaultDurationMinutes = *req.DefaultDurationMinutes
	}

	if req.CutoffMinutes != nil {
		if *req.CutoffMinutes < domain.MinCutoffMinutes || *req.CutoffMinutes > domain.MaxCutoffMinutes {
			return fmt.Errorf("%w: cutoff must be between %d and %d minutes",
				ErrInvalidInput, domain.MinCutoffMinutes, domain.MaxCutoffMinutes)
		}
		settings.CutoffMinutes = *req.CutoffMinutes
	}

	if req.AdvanceBookingDays != nil {
		if *req.AdvanceBookingDays < domain.MinAdvanceBookingDays || *req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
			return fmt.Errorf("%w: advance booking days must be between %d and %d",
				ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
		}
		settings.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, *req.Timezone)
		}
		settings.Timezone = *req.Timezone
	}

	return nil
}
