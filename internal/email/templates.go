package email

import (
	"context"
	"fmt"
	"time"
)

const whenLayout = "Mon, Jan 2 2006 at 15:04"

// SendNewAppointment tells an admin that a client requested a slot.
func (s *Service) SendNewAppointment(ctx context.Context, to, adminName, clientName, serviceName string, when time.Time) error {
	subject := "New appointment request - " + clientName
	body := fmt.Sprintf(`Hi %s,

%s requested an appointment.

Service: %s
When: %s

Open the admin panel to accept or reject it.

- AS Barber Pro`, adminName, clientName, serviceName, when.Format(whenLayout))

	return s.Send(ctx, TypeNewAppointment, to, adminName, subject, body)
}

// SendStatusChanged tells a client that an admin moved their appointment to status.
func (s *Service) SendStatusChanged(ctx context.Context, to, name, serviceName, status string, when time.Time) error {
	subject := "Your appointment is " + status
	body := fmt.Sprintf(`Hi %s,

Your appointment status changed to: %s

Service: %s
When: %s

- AS Barber Pro`, name, status, serviceName, when.Format(whenLayout))

	return s.Send(ctx, TypeStatusChanged, to, name, subject, body)
}

func (s *Service) SendReminder(ctx context.Context, to, name, serviceName string, when time.Time) error {
	subject := "Reminder: " + serviceName + " tomorrow"
	body := fmt.Sprintf(`Hi %s,

This is a reminder about your appointment tomorrow:

Service: %s
When: %s

See you soon!

- AS Barber Pro`, name, serviceName, when.Format(whenLayout))

	return s.Send(ctx, TypeReminder, to, name, subject, body)
}
