package dto

import (
	"drnote/internal/domain/entity"
	"time"
)

// AppointmentRequest is the DTO for creating or updating an appointment.
type AppointmentRequest struct {
	PatientID uint      `json:"patient_id"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	Notes     *string   `json:"notes,omitempty"`
	Status    string    `json:"status,omitempty"` // Defaults to scheduled
}

// AppointmentResponse is the DTO for sending appointment information to the client.
type AppointmentResponse struct {
	ID             uint      `json:"id"`
	PatientID      uint      `json:"patient_id"`
	PatientName    string    `json:"patient_name,omitempty"`
	Date           time.Time `json:"date"`
	Reason         string    `json:"reason"`
	Notes          *string   `json:"notes,omitempty"`
	Status         string    `json:"status"`
	NotificationID string    `json:"notification_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToAppointmentResponse converts an entity.Appointment to an AppointmentResponse DTO.
func ToAppointmentResponse(a *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:             a.ID,
		PatientID:      a.PatientID,
		PatientName:    a.PatientName(),
		Date:           a.Date,
		Reason:         a.Reason,
		Notes:          a.Notes,
		Status:         a.Status,
		NotificationID: a.NotificationID,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAppointmentResponseList converts a slice of entity.Appointment to DTOs.
func ToAppointmentResponseList(appts []*entity.Appointment) []AppointmentResponse {
	list := make([]AppointmentResponse, len(appts))
	for i, a := range appts {
		list[i] = ToAppointmentResponse(a)
	}
	return list
}
