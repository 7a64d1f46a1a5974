package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evharten/workshop-booking/internal/model"
)

type fakeSessionLister struct {
	sessions []model.Session
	err      error
}

func (f *fakeSessionLister) ListInRange(_ context.Context, _ uint64, _, _ time.Time) ([]model.Session, error) {
	return f.sessions, f.err
}

type fakeQuantitySummer struct {
	reserved map[uint64]int
	err      error
}

func (f *fakeQuantitySummer) ActiveQuantities(_ context.Context, _ []uint64) (map[uint64]int, error) {
	return f.reserved, f.err
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func slot(id uint64, d, hour, capacity, price int) model.Session {
	start := time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC)
	return model.Session{
		ID:         id,
		CategoryID: 1,
		Date:       day(d),
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Capacity:   capacity,
		PriceCents: price,
	}
}

func TestMonthAggregatesPerDay(t *testing.T) {
	svc := NewAvailabilityService(
		&fakeSessionLister{sessions: []model.Session{
			slot(1, 7, 10, 8, 4500),
			slot(2, 7, 14, 6, 4500),
			slot(3, 21, 10, 8, 4500),
		}},
		&fakeQuantitySummer{reserved: map[uint64]int{1: 3, 2: 6}},
	)

	got, err := svc.Month(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)
	require.Len(t, got, 2)

	mar7 := got["2026-03-07"]
	assert.Equal(t, 5, mar7.Remaining) // 5 + 0
	require.Len(t, mar7.Times, 2)
	assert.Equal(t, 5, mar7.Times[0].Remaining)
	assert.False(t, mar7.Times[0].SoldOut)

	// The fully booked 14:00 slot is still listed, flagged sold out.
	assert.Equal(t, 0, mar7.Times[1].Remaining)
	assert.True(t, mar7.Times[1].SoldOut)

	mar21 := got["2026-03-21"]
	assert.Equal(t, 8, mar21.Remaining)
	require.Len(t, mar21.Times, 1)
	assert.Equal(t, uint64(3), mar21.Times[0].ID)
	assert.Equal(t, 4500, mar21.Times[0].PriceCents)
}

func TestMonthClampsNegativeRemaining(t *testing.T) {
	// A capacity edit below the already-reserved count must never surface
	// as negative availability.
	svc := NewAvailabilityService(
		&fakeSessionLister{sessions: []model.Session{slot(1, 7, 10, 4, 4500)}},
		&fakeQuantitySummer{reserved: map[uint64]int{1: 6}},
	)

	got, err := svc.Month(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)
	mar7 := got["2026-03-07"]
	assert.Equal(t, 0, mar7.Remaining)
	assert.True(t, mar7.Times[0].SoldOut)
}

func TestMonthEmpty(t *testing.T) {
	svc := NewAvailabilityService(&fakeSessionLister{}, &fakeQuantitySummer{})
	got, err := svc.Month(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMonthPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")

	svc := NewAvailabilityService(&fakeSessionLister{err: boom}, &fakeQuantitySummer{})
	_, err := svc.Month(context.Background(), 1, 2026, time.March)
	assert.ErrorIs(t, err, boom)

	svc = NewAvailabilityService(
		&fakeSessionLister{sessions: []model.Session{slot(1, 7, 10, 8, 4500)}},
		&fakeQuantitySummer{err: boom},
	)
	_, err = svc.Month(context.Background(), 1, 2026, time.March)
	assert.ErrorIs(t, err, boom)
}
