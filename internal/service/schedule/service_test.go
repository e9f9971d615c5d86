package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/reservation-service/internal/domain"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
	"github.com/tablebook/reservation-service/internal/service/schedule/models"
	"github.com/tablebook/reservation-service/pkg/ptr"
)

type fakeScheduleRepo struct {
	rules    []*domain.OpeningHoursRule
	replaced []*domain.OpeningHoursRule
}

func (f *fakeScheduleRepo) GetByRestaurant(_ context.Context, _ int64) ([]*domain.OpeningHoursRule, error) {
	return f.rules, nil
}

func (f *fakeScheduleRepo) ReplaceWeek(_ context.Context, _ int64, rules []*domain.OpeningHoursRule) error {
	f.replaced = rules
	return nil
}

type fakeSettingsRepo struct {
	settings *domain.RestaurantSettings
	upserted *domain.RestaurantSettings
}

func (f *fakeSettingsRepo) GetByRestaurant(_ context.Context, _ int64) (*domain.RestaurantSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.RestaurantSettings) (*domain.RestaurantSettings, error) {
	f.upserted = s
	return s, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newService(sched *fakeScheduleRepo, settings *fakeSettingsRepo) *Service {
	return NewService(sched, settings, noopLogger{})
}

func TestReplaceWeek(t *testing.T) {
	sched := &fakeScheduleRepo{}
	svc := newService(sched, &fakeSettingsRepo{})

	resp, err := svc.ReplaceWeek(context.Background(), 1, &models.ReplaceWeekRequest{
		Rules: []models.DayRule{
			{DayOfWeek: 0, IsOpen: false},
			{DayOfWeek: 5, IsOpen: true, OpenTime: "11:00", CloseTime: "22:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, sched.replaced, 2)
	assert.Equal(t, 5, sched.replaced[1].DayOfWeek)
	assert.Len(t, resp.Rules, 2)
}

func TestReplaceWeek_DuplicateDayRejected(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeSettingsRepo{})

	_, err := svc.ReplaceWeek(context.Background(), 1, &models.ReplaceWeekRequest{
		Rules: []models.DayRule{
			{DayOfWeek: 5, IsOpen: true, OpenTime: "11:00", CloseTime: "22:00"},
			{DayOfWeek: 5, IsOpen: false},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceWeek_InvalidRuleRejected(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeSettingsRepo{})

	cases := []models.DayRule{
		{DayOfWeek: 7, IsOpen: false},                                      // день вне диапазона
		{DayOfWeek: 5, IsOpen: true, OpenTime: "22:00", CloseTime: "11:00"}, // открытие позже закрытия
		{DayOfWeek: 5, IsOpen: true, OpenTime: "11am", CloseTime: "22:00"},  // не HH:MM
		{DayOfWeek: 5, IsOpen: true},                                        // открыт без времени
	}

	for _, rule := range cases {
		_, err := svc.ReplaceWeek(context.Background(), 1, &models.ReplaceWeekRequest{Rules: []models.DayRule{rule}})
		assert.ErrorIs(t, err, ErrInvalidInput, "rule %+v", rule)
	}
}

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeSettingsRepo{})

	resp, err := svc.GetSettings(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotStepMinutes, resp.SlotStepMinutes)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
}

func TestUpdateSettings_PatchesOnlyProvidedFields(t *testing.T) {
	settings := &fakeSettingsRepo{settings: &domain.RestaurantSettings{
		RestaurantID:           1,
		SlotStepMinutes:        30,
		DefaultDurationMinutes: 120,
		CutoffMinutes:          0,
		AdvanceBookingDays:     0,
		Timezone:               "UTC",
	}}
	svc := newService(&fakeScheduleRepo{}, settings)

	resp, err := svc.UpdateSettings(context.Background(), 1, &models.UpdateSettingsRequest{
		CutoffMinutes: ptr.Ptr(60),
		Timezone:      ptr.Ptr("Europe/Moscow"),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, resp.CutoffMinutes)
	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	assert.Equal(t, 30, resp.SlotStepMinutes)
	assert.Equal(t, 120, resp.DefaultDurationMinutes)
}

func TestUpdateSettings_CreatesFromDefaultsWhenMissing(t *testing.T) {
	settings := &fakeSettingsRepo{}
	svc := newService(&fakeScheduleRepo{}, settings)

	resp, err := svc.UpdateSettings(context.Background(), 1, &models.UpdateSettingsRequest{
		SlotStepMinutes: ptr.Ptr(15),
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotStepMinutes)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.DefaultDurationMinutes)
	require.NotNil(t, settings.upserted)
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeSettingsRepo{})

	cases := []*models.UpdateSettingsRequest{
		{SlotStepMinutes: ptr.Ptr(1)},
		{SlotStepMinutes: ptr.Ptr(500)},
		{DefaultDurationMinutes: ptr.Ptr(5)},
		{CutoffMinutes: ptr.Ptr(-1)},
		{AdvanceBookingDays: ptr.Ptr(1000)},
		{Timezone: ptr.Ptr("Mars/Olympus")},
	}

	for _, req := range cases {
		_, err := svc.UpdateSettings(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrInvalidInput, "request %+v", req)
	}
}

func TestUpdateSettings_ZeroDurationAllowed(t *testing.T) {
	svc := newService(&fakeScheduleRepo{}, &fakeSettingsRepo{})

	resp, err := svc.UpdateSettings(context.Background(), 1, &models.UpdateSettingsRequest{
		DefaultDurationMinutes: ptr.Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.DefaultDurationMinutes)
}
