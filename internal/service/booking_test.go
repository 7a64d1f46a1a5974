package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evharten/workshop-booking/internal/model"
	"github.com/evharten/workshop-booking/internal/repository"
)

// fakeBookingStore mirrors the capacity-checked insert: the mutex plays the
// role of the row lock, the running sum the role of the in-transaction
// re-count.
type fakeBookingStore struct {
	mu       sync.Mutex
	capacity int
	reserved int
	nextID   uint64
	inserted []model.Reservation
	err      error // forced error, returned before any capacity check
}

func (f *fakeBookingStore) CreateIfCapacity(_ context.Context, res *model.Reservation) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if res.Quantity > f.capacity-f.reserved {
		return repository.ErrCapacityExceeded
	}
	f.reserved += res.Quantity
	f.nextID++
	res.ID = f.nextID
	f.inserted = append(f.inserted, *res)
	return nil
}

func validInput() CreateReservationInput {
	return CreateReservationInput{SessionID: 1, Name: "Eva de Vries", Email: "eva@example.com", Quantity: 2}
}

func TestCreateReservation(t *testing.T) {
	store := &fakeBookingStore{capacity: 8}
	svc := NewBookingService(store)

	res, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, uint64(1), res.ID)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, "Eva de Vries", res.Name)
	require.Len(t, store.inserted, 1)
}

func TestCreateReservationTrimsInput(t *testing.T) {
	store := &fakeBookingStore{capacity: 8}
	svc := NewBookingService(store)

	in := validInput()
	in.Name = "  Eva de Vries  "
	in.Email = " eva@example.com "
	res, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Eva de Vries", res.Name)
	assert.Equal(t, "eva@example.com", res.Email)
}

func TestCreateReservationValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateReservationInput)
		field  string
	}{
		{"empty name", func(in *CreateReservationInput) { in.Name = "   " }, "name"},
		{"bad email", func(in *CreateReservationInput) { in.Email = "not-an-address" }, "email"},
		{"zero quantity", func(in *CreateReservationInput) { in.Quantity = 0 }, "quantity"},
		{"quantity above cap", func(in *CreateReservationInput) { in.Quantity = MaxQuantity + 1 }, "quantity"},
		{"missing session", func(in *CreateReservationInput) { in.SessionID = 0 }, "session_id"},
	}
	svc := NewBookingService(&fakeBookingStore{capacity: 100})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateReservationQuantityBounds(t *testing.T) {
	svc := NewBookingService(&fakeBookingStore{capacity: 100})

	in := validInput()
	in.Quantity = MinQuantity
	_, err := svc.Create(context.Background(), in)
	assert.NoError(t, err)

	in.Quantity = MaxQuantity
	_, err = svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateReservationCapacity(t *testing.T) {
	store := &fakeBookingStore{capacity: 5}
	svc := NewBookingService(store)

	// Exactly the remaining seats fits.
	in := validInput()
	in.Quantity = 5
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	// One more seat does not.
	in.Quantity = 1
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrCapacityExceeded)
	assert.Len(t, store.inserted, 1)
}

func TestCreateReservationUnknownSession(t *testing.T) {
	store := &fakeBookingStore{capacity: 5, err: repository.ErrSessionNotFound}
	svc := NewBookingService(store)
	_, err := svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestConcurrentBookingsNeverOverbook(t *testing.T) {
	const capacity = 10
	store := &fakeBookingStore{capacity: capacity}
	svc := NewBookingService(store)

	var wg sync.WaitGroup
	var okCount, fullCount int
	var mu sync.Mutex
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := validInput()
			in.Quantity = 1
			_, err := svc.Create(context.Background(), in)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, repository.ErrCapacityExceeded):
				fullCount++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, capacity, okCount)
	assert.Equal(t, 50-capacity, fullCount)
	assert.Equal(t, capacity, store.reserved)
}
