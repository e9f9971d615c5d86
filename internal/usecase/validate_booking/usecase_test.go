package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/reservation-service/internal/domain"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
	"github.com/tablebook/reservation-service/pkg/ptr"
	"github.com/tablebook/reservation-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByRestaurantWithFilter(_ context.Context, _ domain.RestaurantBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeTableRepo struct {
	tables       []*domain.Table
	combinations []*domain.CombinedTable
}

func (f *fakeTableRepo) ListTables(_ context.Context, _ int64, _ bool) ([]*domain.Table, error) {
	return f.tables, nil
}

func (f *fakeTableRepo) ListCombined(_ context.Context, _ int64, _ bool) ([]*domain.CombinedTable, error) {
	return f.combinations, nil
}

type fakeScheduleRepo struct {
	rules []*domain.OpeningHoursRule
}

func (f *fakeScheduleRepo) GetByRestaurant(_ context.Context, _ int64) ([]*domain.OpeningHoursRule, error) {
	return f.rules, nil
}

type fakeSettingsRepo struct {
	settings *domain.RestaurantSettings
	err      error
}

func (f *fakeSettingsRepo) GetByRestaurant(_ context.Context, _ int64) (*domain.RestaurantSettings, error) {
	return f.settings, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

type fixture struct {
	bookings *fakeBookingRepo
	tables   *fakeTableRepo
	schedule *fakeScheduleRepo
	settings *fakeSettingsRepo
	now      time.Time
}

// newFixture собирает стандартный сценарий: ресторан открыт в пятницу
// 17:00-23:00, стол 5 на 4 места занят с 19:00 без времени окончания
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		bookings: &fakeBookingRepo{bookings: []*domain.Booking{
			{
				ID:           1,
				RestaurantID: 1,
				TableID:      ptr.Ptr(int64(5)),
				BookingDate:  time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
				StartTime:    mustTime(t, "19:00"),
				EndTime:      nil,
				Status:       domain.StatusConfirmed,
			},
		}},
		tables: &fakeTableRepo{tables: []*domain.Table{
			{ID: 5, RestaurantID: 1, Capacity: 4, IsActive: true},
			{ID: 6, RestaurantID: 1, Capacity: 2, IsActive: true},
		}},
		schedule: &fakeScheduleRepo{rules: []*domain.OpeningHoursRule{
			{RestaurantID: 1, DayOfWeek: 0, IsOpen: false},
			{RestaurantID: 1, DayOfWeek: 5, IsOpen: true, OpenTime: mustTime(t, "17:00"), CloseTime: mustTime(t, "23:00")},
		}},
		settings: &fakeSettingsRepo{settings: domain.DefaultSettings(1)},
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.bookings, f.tables, f.schedule, f.settings, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: f.now}
	return uc
}

func tableSelection(id int64) *domain.TableSelection {
	return &domain.TableSelection{Kind: domain.SelectionTable, ID: id}
}

func TestExecute_OccupiedTableRejectedWithSlotConflict(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "19:00"),
		PartySize:    2,
		Selection:    tableSelection(5),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonSlotConflict, resp.Reason)
}

func TestExecute_SameTableEarlierTimeAllowed(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:30"),
		PartySize:    2,
		Selection:    tableSelection(5),
	})
	require.NoError(t, err)
	assert.True(t, resp.Allowed)
	assert.Empty(t, resp.Reason)
}

func TestExecute_OpenEndedBookingBlocksLateEvening(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "22:30"),
		PartySize:    2,
		Selection:    tableSelection(5),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonSlotConflict, resp.Reason)
}

func TestExecute_ClosedDayRejectedRegardlessOfOtherFields(t *testing.T) {
	f := newFixture(t)

	// 2024-06-09 — воскресенье с isOpen=false; время и размер компании корректны
	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
		Selection:    tableSelection(5),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonRestaurantClosed, resp.Reason)
}

func TestExecute_MissingRuleMeansClosed(t *testing.T) {
	f := newFixture(t)

	// 2024-06-08 — суббота, правила нет вовсе
	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonRestaurantClosed, resp.Reason)
}

func TestExecute_OperatingHoursBoundaries(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	// Ровно в открытие — допустимо
	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         date,
		StartTime:    mustTime(t, "17:00"),
		PartySize:    2,
		Selection:    tableSelection(6),
	})
	require.NoError(t, err)
	assert.True(t, resp.Allowed)

	// Ровно в закрытие — вне рабочих часов (строгая граница)
	resp, err = f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         date,
		StartTime:    mustTime(t, "23:00"),
		PartySize:    2,
		Selection:    tableSelection(6),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonOutsideOperatingHours, resp.Reason)

	// До открытия
	resp, err = f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         date,
		StartTime:    mustTime(t, "16:30"),
		PartySize:    2,
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonOutsideOperatingHours, resp.Reason)
}

func TestExecute_ClosedTakesPrecedenceOverCapacity(t *testing.T) {
	f := newFixture(t)

	// Воскресенье закрыто, а размер компании заведомо не влезает:
	// отказ обязан быть restaurant_closed, проверки дальше не идут
	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    50,
		Selection:    tableSelection(6),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonRestaurantClosed, resp.Reason)
}

func TestExecute_InsufficientCapacity(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    6,
		Selection:    tableSelection(5),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonInsufficientCapacity, resp.Reason)
	assert.Equal(t, 6, resp.Required)
	assert.Equal(t, 4, resp.Available)
	assert.Contains(t, resp.Message, "4 guests")
	assert.Contains(t, resp.Message, "6 guests")
}

func TestExecute_CombinationCapacityRecomputedFromLiveTables(t *testing.T) {
	f := newFixture(t)
	f.tables.combinations = []*domain.CombinedTable{
		// Сохраненная сумма 8 устарела: живая вместимость столов 5+6 = 6
		{ID: 100, RestaurantID: 1, Name: "Banquet", TableIDs: []int64{5, 6}, TotalCapacity: 8, IsActive: true},
	}
	f.bookings.bookings = nil

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    7,
		Selection:    &domain.TableSelection{Kind: domain.SelectionCombination, ID: 100},
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonInsufficientCapacity, resp.Reason)
	assert.Equal(t, 6, resp.Available)
}

func TestExecute_CombinationBlockedByMemberBooking(t *testing.T) {
	f := newFixture(t)
	f.tables.combinations = []*domain.CombinedTable{
		{ID: 100, RestaurantID: 1, Name: "Banquet", TableIDs: []int64{5, 6}, TotalCapacity: 6, IsActive: true},
	}

	// Стол 5 занят с 19:00 — комбинация с его участием недоступна
	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "20:00"),
		PartySize:    5,
		Selection:    &domain.TableSelection{Kind: domain.SelectionCombination, ID: 100},
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonSlotConflict, resp.Reason)
}

func TestExecute_NoSelectionDefersToAutoAssign(t *testing.T) {
	f := newFixture(t)

	// Без явного выбора guard не проверяет конфликты: подбор стола
	// выполнит создание бронирования
	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "19:00"),
		PartySize:    2,
	})
	require.NoError(t, err)
	assert.True(t, resp.Allowed)
}

func TestExecute_UnknownSelectionRejected(t *testing.T) {
	f := newFixture(t)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
		Selection:    tableSelection(999),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonInsufficientCapacity, resp.Reason)
	assert.Equal(t, 0, resp.Available)
}

func TestExecute_CutoffRejectsShortNotice(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.CutoffMinutes = 120
	f.now = time.Date(2024, 6, 7, 17, 0, 0, 0, time.UTC)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
		Selection:    tableSelection(6),
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonBookingCutoff, resp.Reason)

	// В 19:00 срок соблюден
	resp, err = f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "19:00"),
		PartySize:    2,
		Selection:    tableSelection(6),
	})
	require.NoError(t, err)
	assert.True(t, resp.Allowed)
}

func TestExecute_PastDateRejectedWithCutoff(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
	})
	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, domain.ReasonBookingCutoff, resp.Reason)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.AdvanceBookingDays = 14

	_, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_MissingSettingsFallsBackToDefaults(t *testing.T) {
	f := newFixture(t)
	f.settings = &fakeSettingsRepo{err: settingsRepo.ErrSettingsNotFound}

	resp, err := f.useCase().Execute(context.Background(), &Request{
		RestaurantID: 1,
		Date:         time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:    mustTime(t, "18:00"),
		PartySize:    2,
		Selection:    tableSelection(6),
	})
	require.NoError(t, err)
	assert.True(t, resp.Allowed)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase()
	date := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  *Request
	}{
		{"zero restaurant", &Request{RestaurantID: 0, Date: date, StartTime: mustTime(t, "18:00"), PartySize: 2}},
		{"zero date", &Request{RestaurantID: 1, StartTime: mustTime(t, "18:00"), PartySize: 2}},
		{"bad time", &Request{RestaurantID: 1, Date: date, StartTime: types.TimeString("25:00"), PartySize: 2}},
		{"zero party", &Request{RestaurantID: 1, Date: date, StartTime: mustTime(t, "18:00"), PartySize: 0}},
		{"end before start", &Request{
			RestaurantID: 1, Date: date, StartTime: mustTime(t, "18:00"),
			EndTime: ptr.Ptr(mustTime(t, "17:00")), PartySize: 2,
		}},
		{"bad selection kind", &Request{
			RestaurantID: 1, Date: date, StartTime: mustTime(t, "18:00"), PartySize: 2,
			Selection: &domain.TableSelection{Kind: "zone", ID: 1},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SameDayInRestaurantTimezone(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-06-07 — пятница, ресторан открыт 17:00-23:00
	date := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		timezone  string
		now       time.Time
		startTime string
		allowed   bool
		reason    domain.RejectionReason
	}{
		{
			// Полдень по Нью-Йорку: дата совпадает с местным сегодняшним
			// днём, вечер ещё впереди
			name:      "evening booking at local noon in negative offset",
			timezone:  "America/New_York",
			now:       time.Date(2024, 6, 7, 12, 0, 0, 0, newYork),
			startTime: "19:00",
			allowed:   true,
		},
		{
			name:      "cutoff still applies to local clock",
			timezone:  "America/New_York",
			now:       time.Date(2024, 6, 7, 18, 30, 0, 0, newYork),
			startTime: "19:00",
			allowed:   false,
			reason:    domain.ReasonBookingCutoff,
		},
		{
			name:      "evening booking at local morning in positive offset",
			timezone:  "Asia/Tokyo",
			now:       time.Date(2024, 6, 7, 7, 0, 0, 0, tokyo),
			startTime: "19:00",
			allowed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.settings.settings.Timezone = tt.timezone
			f.settings.settings.CutoffMinutes = 60
			f.now = tt.now

			resp, err := f.useCase().Execute(context.Background(), &Request{
				RestaurantID: 1,
				Date:         date,
				StartTime:    mustTime(t, tt.startTime),
				PartySize:    2,
				Selection:    tableSelection(6),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, resp.Allowed)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestExecute_AdvanceBookingLimitInRestaurantTimezone(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		name     string
		timezone string
		now      time.Time
	}{
		{
			name:     "negative offset",
			timezone: "America/New_York",
			now:      time.Date(2024, 6, 1, 20, 0, 0, 0, newYork),
		},
		{
			name:     "positive offset",
			timezone: "Asia/Tokyo",
			now:      time.Date(2024, 6, 1, 7, 0, 0, 0, tokyo),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.settings.settings.Timezone = tt.timezone
			f.settings.settings.AdvanceBookingDays = 14
			f.now = tt.now

			// Ровно 14 дней вперед (2024-06-15) — в пределах лимита
			_, err := f.useCase().Execute(context.Background(), &Request{
				RestaurantID: 1,
				Date:         time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				StartTime:    mustTime(t, "19:00"),
				PartySize:    2,
			})
			require.NoError(t, err)

			// На день дальше — отказ вне зависимости от смещения пояса
			_, err = f.useCase().Execute(context.Background(), &Request{
				RestaurantID: 1,
				Date:         time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
				StartTime:    mustTime(t, "19:00"),
				PartySize:    2,
			})
			assert.ErrorIs(t, err, ErrDateTooFarInFuture)
		})
	}
}
