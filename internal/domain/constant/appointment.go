package constant

// Appointment status values. Stored as plain strings.
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCanceled  = "canceled"
)

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCanceled:
		return true
	}
	return false
}

// AppointmentEventType identifies a record store lifecycle event.
type AppointmentEventType string

const (
	AppointmentCreated AppointmentEventType = "created"
	AppointmentEdited  AppointmentEventType = "edited"
	AppointmentDeleted AppointmentEventType = "deleted"
)
