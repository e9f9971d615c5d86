package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/reservation-service/internal/domain"
	bookingRepo "github.com/tablebook/reservation-service/internal/infra/storage/booking"
	"github.com/tablebook/reservation-service/pkg/ptr"
	"github.com/tablebook/reservation-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	created   *domain.Booking
	nextID    int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
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
}

func (f *fakeSettingsRepo) GetByRestaurant(_ context.Context, _ int64) (*domain.RestaurantSettings, error) {
	return f.settings, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, restaurantID int64, date string) {
	f.invalidated = append(f.invalidated, date)
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
	tx       *fakeTxManager
	cache    *fakeCache
	now      time.Time
}

// newFixture собирает стандартный сценарий: пятница 17:00-23:00,
// столы на 2 и 4 места плюс комбинация из них на 6
func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		bookings: &fakeBookingRepo{},
		tables: &fakeTableRepo{
			tables: []*domain.Table{
				{ID: 1, RestaurantID: 1, TableNumber: "T1", Capacity: 2, IsActive: true},
				{ID: 2, RestaurantID: 1, TableNumber: "T2", Capacity: 4, IsActive: true},
			},
			combinations: []*domain.CombinedTable{
				{ID: 100, RestaurantID: 1, Name: "Banquet", TableIDs: []int64{1, 2}, TotalCapacity: 6, IsActive: true},
			},
		},
		schedule: &fakeScheduleRepo{rules: []*domain.OpeningHoursRule{
			{RestaurantID: 1, DayOfWeek: 0, IsOpen: false},
			{RestaurantID: 1, DayOfWeek: 5, IsOpen: true, OpenTime: mustTime(t, "17:00"), CloseTime: mustTime(t, "23:00")},
		}},
		settings: &fakeSettingsRepo{settings: domain.DefaultSettings(1)},
		tx:       &fakeTxManager{},
		cache:    &fakeCache{},
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	uc := NewUseCase(f.bookings, f.tables, f.schedule, f.settings, f.tx, f.cache, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: f.now}
	return uc
}

func friday() time.Time {
	return time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
}

func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		RestaurantID: 1,
		GuestID:      42,
		Date:         friday(),
		StartTime:    mustTime(t, "19:00"),
		PartySize:    2,
	}
}

func TestExecute_ExplicitTableAssigned(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.Selection = &domain.TableSelection{Kind: domain.SelectionTable, ID: 2}

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.TableID)
	assert.Equal(t, int64(2), *resp.TableID)
	assert.Nil(t, resp.CombinedTableID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Len(t, resp.ConfirmationCode, confirmationCodeLength)
	assert.Equal(t, 1, f.tx.calls)

	// Время окончания выведено из длительности по умолчанию (120 минут)
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, mustTime(t, "21:00"), *resp.EndTime)
}

func TestExecute_ExplicitEndTimePreserved(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.EndTime = ptr.Ptr(mustTime(t, "20:30"))

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, mustTime(t, "20:30"), *resp.EndTime)
}

func TestExecute_ZeroDefaultDurationMeansOpenEnded(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.DefaultDurationMinutes = 0

	resp, err := f.useCase().Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.Nil(t, resp.EndTime)
}

func TestExecute_DerivedEndPastMidnightBecomesOpenEnded(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.DefaultDurationMinutes = 360

	req := baseRequest(t)
	req.StartTime = mustTime(t, "22:00")

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.EndTime)
}

func TestExecute_AutoAssignPicksSmallestSufficientTable(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.PartySize = 2

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.TableID)
	assert.Equal(t, int64(1), *resp.TableID)
}

func TestExecute_AutoAssignFallsBackToCombination(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.PartySize = 6

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.TableID)
	require.NotNil(t, resp.CombinedTableID)
	assert.Equal(t, int64(100), *resp.CombinedTableID)
}

func TestExecute_AutoAssignSkipsOccupiedTable(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{
			ID: 1, RestaurantID: 1, TableID: ptr.Ptr(int64(1)), BookingDate: friday(),
			StartTime: mustTime(t, "18:00"), EndTime: ptr.Ptr(mustTime(t, "20:00")),
			Status: domain.StatusConfirmed,
		},
	}

	resp, err := f.useCase().Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	require.NotNil(t, resp.TableID)
	assert.Equal(t, int64(2), *resp.TableID)
}

func TestExecute_ExplicitTableOccupiedRejected(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{
			ID: 1, RestaurantID: 1, TableID: ptr.Ptr(int64(2)), BookingDate: friday(),
			StartTime: mustTime(t, "19:00"), EndTime: nil,
			Status: domain.StatusConfirmed,
		},
	}

	req := baseRequest(t)
	req.Selection = &domain.TableSelection{Kind: domain.SelectionTable, ID: 2}

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_IntervalOverlapDetected(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{
			ID: 1, RestaurantID: 1, TableID: ptr.Ptr(int64(2)), BookingDate: friday(),
			StartTime: mustTime(t, "19:00"), EndTime: ptr.Ptr(mustTime(t, "21:00")),
			Status: domain.StatusConfirmed,
		},
	}

	// [20:30, 22:30) пересекается с [19:00, 21:00)
	req := baseRequest(t)
	req.StartTime = mustTime(t, "20:30")
	req.Selection = &domain.TableSelection{Kind: domain.SelectionTable, ID: 2}

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// [21:00, 23:00) стыкуется с [19:00, 21:00) без пересечения
	req = baseRequest(t)
	req.StartTime = mustTime(t, "21:00")
	req.Selection = &domain.TableSelection{Kind: domain.SelectionTable, ID: 2}

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *resp.TableID)
}

func TestExecute_CombinationBlockedByMemberBooking(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{
			ID: 1, RestaurantID: 1, TableID: ptr.Ptr(int64(1)), BookingDate: friday(),
			StartTime: mustTime(t, "19:00"), EndTime: nil,
			Status: domain.StatusConfirmed,
		},
	}

	req := baseRequest(t)
	req.PartySize = 5
	req.Selection = &domain.TableSelection{Kind: domain.SelectionCombination, ID: 100}

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.bookings.bookings = []*domain.Booking{
		{
			ID: 1, RestaurantID: 1, TableID: ptr.Ptr(int64(2)), BookingDate: friday(),
			StartTime: mustTime(t, "19:00"), EndTime: nil,
			Status: domain.StatusCancelledByGuest,
		},
	}

	req := baseRequest(t)
	req.Selection = &domain.TableSelection{Kind: domain.SelectionTable, ID: 2}

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *resp.TableID)
}

func TestExecute_SelectionTooSmallRejected(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.PartySize = 6
	req.Selection = &domain.TableSelection{Kind: domain.SelectionTable, ID: 2}

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestExecute_AutoAssignNothingFits(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.PartySize = 10

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestExecute_AutoAssignAllSufficientSeatingsOccupied(t *testing.T) {
	f := newFixture(t)
	// Стол 2 (единственный на 4+) занят открытым бронированием,
	// комбинация блокирована через него же
	f.bookings.bookings = []*domain.Booking{
		{
			ID: 1, RestaurantID: 1, TableID: ptr.Ptr(int64(2)), BookingDate: friday(),
			StartTime: mustTime(t, "18:00"), EndTime: nil,
			Status: domain.StatusConfirmed,
		},
	}

	req := baseRequest(t)
	req.PartySize = 4

	// Вместимости хватает (стол 2 на 4 места существует), но он занят
	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.Date = time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRestaurantClosed)
}

func TestExecute_OutsideOperatingHoursRejected(t *testing.T) {
	f := newFixture(t)

	req := baseRequest(t)
	req.StartTime = mustTime(t, "23:00") // ровно закрытие, строгая граница

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)

	req.StartTime = mustTime(t, "17:00") // ровно открытие допустимо
	_, err = f.useCase().Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CutoffRejected(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.CutoffMinutes = 120
	f.now = time.Date(2024, 6, 7, 18, 0, 0, 0, time.UTC)

	req := baseRequest(t)
	req.StartTime = mustTime(t, "19:00")

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingCutoff)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	_, err := f.useCase().Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimitRejected(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.AdvanceBookingDays = 3

	_, err := f.useCase().Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ConstraintViolationMapsToSlotConflict(t *testing.T) {
	f := newFixture(t)
	f.bookings.createErr = bookingRepo.ErrSlotTaken

	_, err := f.useCase().Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_CacheInvalidatedAfterCreate(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase().Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-07"}, f.cache.invalidated)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase()

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero restaurant", func(r *Request) { r.RestaurantID = 0 }},
		{"zero guest", func(r *Request) { r.GuestID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"bad time", func(r *Request) { r.StartTime = types.TimeString("7pm") }},
		{"zero party", func(r *Request) { r.PartySize = 0 }},
		{"oversized party", func(r *Request) { r.PartySize = domain.MaxPartySize + 1 }},
		{"end before start", func(r *Request) { r.EndTime = ptr.Ptr(mustTime(t, "18:00")) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest(t)
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SameDayInRestaurantTimezone(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Полдень по Нью-Йорку в запрошенную пятницу: полночь UTC этой даты
	// уже позади, но для ресторана день ещё не прошёл
	f := newFixture(t)
	f.settings.settings.Timezone = "America/New_York"
	f.settings.settings.CutoffMinutes = 60
	f.now = time.Date(2024, 6, 7, 12, 0, 0, 0, newYork)

	resp, err := f.useCase().Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Вечером того же дня cutoff по местным часам по-прежнему действует
	f.now = time.Date(2024, 6, 7, 18, 30, 0, 0, newYork)
	_, err = f.useCase().Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrBookingCutoff)
}

func TestExecute_AdvanceBookingLimitInRestaurantTimezone(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := newFixture(t)
	f.settings.settings.Timezone = "America/New_York"
	f.settings.settings.AdvanceBookingDays = 14
	f.now = time.Date(2024, 5, 24, 20, 0, 0, 0, newYork)

	// Ровно 14 дней вперед (2024-06-07) — в пределах лимита независимо
	// от смещения пояса
	_, err = f.useCase().Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	req := baseRequest(t)
	req.Date = time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	_, err = f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}
