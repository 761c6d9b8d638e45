package dto

import (
	"drnote/internal/domain/entity"
	"time"
)

// PendingReminderResponse is the DTO for a reminder waiting to fire.
type PendingReminderResponse struct {
	NotificationID string     `json:"notification_id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	FireAt         time.Time  `json:"fire_at"`
	AppointmentAt  time.Time  `json:"appointment_at"`
	NextRun        *time.Time `json:"next_run,omitempty"` // Unset when no job backs the row
}

// ToPendingReminderResponse converts an entity.PendingReminder to a PendingReminderResponse DTO.
func ToPendingReminderResponse(r *entity.PendingReminder) PendingReminderResponse {
	return PendingReminderResponse{
		NotificationID: r.NotificationID,
		Title:          r.Title,
		Body:           r.Body,
		FireAt:         r.FireAt,
		AppointmentAt:  r.AppointmentAt,
	}
}

// ToPendingReminderResponseList converts a slice of entity.PendingReminder to DTOs.
func ToPendingReminderResponseList(reminders []*entity.PendingReminder) []PendingReminderResponse {
	list := make([]PendingReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToPendingReminderResponse(r)
	}
	return list
}

// DeliveredReminderResponse is the DTO for an entry in the notification list.
type DeliveredReminderResponse struct {
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Banner         bool      `json:"banner"`
	Sound          bool      `json:"sound"`
	DeliveredAt    time.Time `json:"delivered_at"`
}

// ToDeliveredReminderResponseList converts a slice of entity.DeliveredReminder to DTOs.
func ToDeliveredReminderResponseList(delivered []*entity.DeliveredReminder) []DeliveredReminderResponse {
	list := make([]DeliveredReminderResponse, len(delivered))
	for i, d := range delivered {
		list[i] = DeliveredReminderResponse{
			NotificationID: d.NotificationID,
			Title:          d.Title,
			Body:           d.Body,
			Banner:         d.Banner,
			Sound:          d.Sound,
			DeliveredAt:    d.DeliveredAt,
		}
	}
	return list
}

// AuthorizationResponse reports the notification authorization state.
type AuthorizationResponse struct {
	Status string `json:"status"`
	// Cached is the status the reminder coordinator resolved at start-up.
	Cached string `json:"cached"`
}

// UpdateAuthorizationRequest is the DTO for a settings change made outside the app.
type UpdateAuthorizationRequest struct {
	Status string `json:"status"` // undetermined, authorized or denied
}
