package dto

import (
	"drnote/internal/domain/entity"
	"time"
)

// PatientRequest is the DTO for creating or updating a patient.
type PatientRequest struct {
	FullName string  `json:"full_name"`
	Age      *int    `json:"age,omitempty"`
	Gender   string  `json:"gender,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Tags     *string `json:"tags,omitempty"`
}

// PatientResponse is the DTO for sending patient information to the client.
type PatientResponse struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"full_name"`
	Age         *int      `json:"age,omitempty"`
	Gender      string    `json:"gender"`
	GenderLabel string    `json:"gender_label"`
	Phone       *string   `json:"phone,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Tags        *string   `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToPatientResponse converts an entity.Patient to a PatientResponse DTO.
func ToPatientResponse(p *entity.Patient) PatientResponse {
	g := p.GetGender()
	return PatientResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		Age:         p.Age,
		Gender:      string(g),
		GenderLabel: g.Label(),
		Phone:       p.Phone,
		Notes:       p.Notes,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPatientResponseList converts a slice of entity.Patient to DTOs.
func ToPatientResponseList(patients []*entity.Patient) []PatientResponse {
	list := make([]PatientResponse, len(patients))
	for i, p := range patients {
		list[i] = ToPatientResponse(p)
	}
	return list
}
