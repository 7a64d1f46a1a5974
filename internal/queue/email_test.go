package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(kind Kind) NotificationEvent {
	return NotificationEvent{
		ID:            "ev-1",
		Kind:          kind,
		ReservationID: 7,
		Name:          "Eva",
		Email:         "eva@example.com",
		Quantity:      2,
		Workshop:      "Pottery",
		Date:          "Sat Mar 7 2026",
		Start:         "10:00",
	}
}

func TestRenderEmailPerKind(t *testing.T) {
	cases := []struct {
		kind    Kind
		subject string
	}{
		{KindConfirmation, "Your reservation is confirmed"},
		{KindCanceled, "Your reservation has been canceled"},
		{KindRefundInitiated, "Your refund has been initiated"},
		{KindRefundCompleted, "Your refund has been completed"},
	}
	for _, tc := range cases {
		msg, err := renderEmail(testEvent(tc.kind))
		require.NoError(t, err, "%s", tc.kind)
		assert.Equal(t, "eva@example.com", msg.To)
		assert.Equal(t, tc.subject, msg.Subject)
		assert.Contains(t, msg.HTML, "Hi Eva")
	}
}

func TestRenderEmailIncludesWorkshopDetails(t *testing.T) {
	msg, err := renderEmail(testEvent(KindConfirmation))
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "Pottery")
	assert.Contains(t, msg.HTML, "Sat Mar 7 2026")
	assert.Contains(t, msg.HTML, "Participants:</strong> 2")
}

func TestRenderEmailUnknownKind(t *testing.T) {
	_, err := renderEmail(NotificationEvent{Kind: Kind("nonsense")})
	assert.Error(t, err)
}
