package queue

import (
	"fmt"

	"github.com/evharten/workshop-booking/internal/mailer"
)

// renderEmail turns a notification event into the outgoing message.  The
// wording matches what customers saw before notifications moved to the
// queue, one template per kind.
func renderEmail(ev NotificationEvent) (mailer.Message, error) {
	details := ""
	if ev.Workshop != "" {
		details = fmt.Sprintf("<p><strong>Workshop:</strong> %s<br/><strong>Date:</strong> %s</p>", ev.Workshop, ev.Date)
	}
	participants := fmt.Sprintf("<p><strong>Participants:</strong> %d</p>", ev.Quantity)

	switch ev.Kind {
	case KindConfirmation:
		return mailer.Message{
			To:      ev.Email,
			Subject: "Your reservation is confirmed",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Thanks for your payment. Your reservation is confirmed.</p>%s%s<p>We look forward to seeing you!</p>",
				ev.Name, details, participants),
		}, nil
	case KindCanceled:
		return mailer.Message{
			To:      ev.Email,
			Subject: "Your reservation has been canceled",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your reservation has been canceled.</p>%s%s",
				ev.Name, details, participants),
		}, nil
	case KindRefundInitiated:
		return mailer.Message{
			To:      ev.Email,
			Subject: "Your refund has been initiated",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your reservation has been canceled and a refund has been initiated. You should see the funds back in your account within 5-10 business days.</p>%s%s",
				ev.Name, details, participants),
		}, nil
	case KindRefundCompleted:
		return mailer.Message{
			To:      ev.Email,
			Subject: "Your refund has been completed",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your refund has been completed. It may take a few days for it to appear on your statement.</p>%s",
				ev.Name, participants),
		}, nil
	}
	return mailer.Message{}, fmt.Errorf("unknown notification kind %q", ev.Kind)
}
