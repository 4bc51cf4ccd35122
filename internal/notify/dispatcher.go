package notify

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// BookingEmail is the confirmation sent after a booking commit. It is
// a side effect of a successful commit, never part of the scheduling
// logic: failures are logged and dropped.
type BookingEmail struct {
	To          string
	Customer    string
	Shop        string
	ServiceName string
	StaffName   string
	Date        string
	StartTime   string
	EndTime     string
}

// Dispatcher queues booking emails off the request path, same shape as
// the audit dispatcher: bounded queue, lossy on overflow.
type Dispatcher struct {
	sender Sender
	queue  chan BookingEmail
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan BookingEmail, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		subject := fmt.Sprintf("Booking confirmed at %s", msg.Shop)
		body := fmt.Sprintf(
			"Hi %s,\n\nYour booking is confirmed.\n\nService: %s\nWith: %s\nDate: %s\nTime: %s - %s\n\nSee you soon!\n%s\n",
			msg.Customer,
			msg.ServiceName,
			msg.StaffName,
			msg.Date,
			msg.StartTime,
			msg.EndTime,
			msg.Shop,
		)

		if err := d.sender.Send(msg.To, subject, body); err != nil {
			logrus.WithError(err).WithField("to", msg.To).Error("booking email failed")
		}
	}
}

func (d *Dispatcher) Dispatch(msg BookingEmail) {
	select {
	case d.queue <- msg:
	default:
		logrus.Warn("notify queue full, dropping booking email")
	}
}
