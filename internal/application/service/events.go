package service

import "drnote/internal/domain/entity"

// EventPublisher receives appointment lifecycle events from the write path.
// Publish must not block on reminder work.
type EventPublisher interface {
	Publish(event entity.AppointmentEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(entity.AppointmentEvent) {}

// snapshotAppointment copies appt so subscribers never share it with the caller.
func snapshotAppointment(appt *entity.Appointment) entity.Appointment {
	cp := *appt
	if appt.Patient != nil {
		p := *appt.Patient
		cp.Patient = &p
	}
	return cp
}
