package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/reservation-service/internal/domain"
	bookingRepo "github.com/tablebook/reservation-service/internal/infra/storage/booking"
	"github.com/tablebook/reservation-service/internal/service/bookings/models"
	"github.com/tablebook/reservation-service/pkg/ptr"
	"github.com/tablebook/reservation-service/pkg/types"
)

type fakeRepo struct {
	byID map[int64]*domain.Booking

	cancelled       []int64
	cancelledStatus domain.BookingStatus
	updatedStatus   *domain.BookingStatus
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByGuestID(_ context.Context, guestID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.GuestID != guestID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) GetByRestaurantWithFilter(_ context.Context, filter domain.RestaurantBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.RestaurantID == filter.RestaurantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = &status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, _ string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled = append(f.cancelled, id)
	f.cancelledStatus = status
	return nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, restaurantID int64, date string) {
	f.invalidated = append(f.invalidated, date)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:               1,
		RestaurantID:     10,
		GuestID:          42,
		TableID:          ptr.Ptr(int64(5)),
		BookingDate:      time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
		StartTime:        types.TimeString("19:00"),
		PartySize:        2,
		Status:           domain.StatusConfirmed,
		ConfirmationCode: "AB12CD34EF",
	}
}

func newService(repo *fakeRepo, cache *fakeCache) *Service {
	if cache == nil {
		return NewService(repo, nil, noopLogger{})
	}
	return NewService(repo, cache, noopLogger{})
}

func TestGetByID_OwnerAllowed(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 1, 42, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "19:00", resp.StartTime)
	assert.Equal(t, "2024-06-07", resp.BookingDate)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	_, err := svc.GetByID(context.Background(), 1, 777, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_StaffAllowed(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 1, 777, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{}}
	svc := newService(repo, nil)

	_, err := svc.GetByID(context.Background(), 99, 42, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_OwnerSetsGuestStatus(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	cache := &fakeCache{}
	svc := newService(repo, cache)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42, CancellationReason: "plans changed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByGuest, repo.cancelledStatus)
	assert.Equal(t, []string{"2024-06-07"}, cache.invalidated)
}

func TestCancel_StaffSetsStaffStatus(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 777, IsStaff: true, CancellationReason: "kitchen closed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByStaff, repo.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 777})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	b := testBooking()
	b.Status = domain.StatusCompleted
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: b}}
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_InvalidStatusRejected(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 777, Status: "eaten"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_TransitionToInactiveInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	cache := &fakeCache{}
	svc := newService(repo, cache)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 777, Status: "no_show"})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusNoShow, *repo.updatedStatus)
	assert.Equal(t, []string{"2024-06-07"}, cache.invalidated)
}

func TestUpdateStatus_ActiveTransitionKeepsCache(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	cache := &fakeCache{}
	svc := newService(repo, cache)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 777, Status: "seated"})
	require.NoError(t, err)
	assert.Empty(t, cache.invalidated)
}

func TestGetGuestBookings_FiltersByStatus(t *testing.T) {
	second := testBooking()
	second.ID = 2
	second.Status = domain.StatusCompleted

	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking(), 2: second}}
	svc := newService(repo, nil)

	resp, err := svc.GetGuestBookings(context.Background(), &models.GetGuestBookingsRequest{
		GuestID: 42,
		Status:  ptr.Ptr("completed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetGuestBookings_InvalidStatus(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{}}
	svc := newService(repo, nil)

	_, err := svc.GetGuestBookings(context.Background(), &models.GetGuestBookingsRequest{
		GuestID: 42,
		Status:  ptr.Ptr("munching"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetRestaurantBookings(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{1: testBooking()}}
	svc := newService(repo, nil)

	resp, err := svc.GetRestaurantBookings(context.Background(), &models.GetRestaurantBookingsRequest{RestaurantID: 10})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "AB12CD34EF", resp.Bookings[0].ConfirmationCode)
}
