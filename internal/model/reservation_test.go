package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOccupies(t *testing.T) {
	// Canceled and refunded reservations free their seats; everything else
	// counts against capacity.
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusPaid.Occupies())
	assert.True(t, StatusRefunding.Occupies())
	assert.False(t, StatusCanceled.Occupies())
	assert.False(t, StatusRefunded.Occupies())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCanceled.Terminal())
	assert.True(t, StatusRefunded.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusPaid.Terminal())
	assert.False(t, StatusRefunding.Terminal())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPaid, StatusCanceled, StatusRefunding, StatusRefunded} {
		assert.True(t, s.Valid(), "%s", s)
	}
	assert.False(t, Status("PAYED").Valid())
	assert.False(t, Status("").Valid())
}
