package dto

import (
	"drnote/internal/domain/entity"
	"time"
)

// NoteRequest is the DTO for creating or updating a note.
type NoteRequest struct {
	Title string  `json:"title"`
	Body  *string `json:"body,omitempty"`
}

// NoteResponse is the DTO for sending a note to the client.
type NoteResponse struct {
	ID        uint      `json:"id"`
	PatientID uint      `json:"patient_id"`
	Title     string    `json:"title"`
	Body      *string   `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToNoteResponse converts an entity.Note to a NoteResponse DTO.
func ToNoteResponse(n *entity.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		PatientID: n.PatientID,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
	}
}

// ToNoteResponseList converts a slice of entity.Note to DTOs.
func ToNoteResponseList(notes []*entity.Note) []NoteResponse {
	list := make([]NoteResponse, len(notes))
	for i, n := range notes {
		list[i] = ToNoteResponse(n)
	}
	return list
}

// PrescriptionRequest is the DTO for creating or updating a prescription.
type PrescriptionRequest struct {
	Medication   string  `json:"medication"`
	Dosage       *string `json:"dosage,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
}

// PrescriptionResponse is the DTO for sending a prescription to the client.
type PrescriptionResponse struct {
	ID           uint      `json:"id"`
	PatientID    uint      `json:"patient_id"`
	Medication   string    `json:"medication"`
	Dosage       *string   `json:"dosage,omitempty"`
	Instructions *string   `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToPrescriptionResponse converts an entity.Prescription to a PrescriptionResponse DTO.
func ToPrescriptionResponse(p *entity.Prescription) PrescriptionResponse {
	return PrescriptionResponse{
		ID:           p.ID,
		PatientID:    p.PatientID,
		Medication:   p.Medication,
		Dosage:       p.Dosage,
		Instructions: p.Instructions,
		CreatedAt:    p.CreatedAt,
	}
}

// ToPrescriptionResponseList converts a slice of entity.Prescription to DTOs.
func ToPrescriptionResponseList(list []*entity.Prescription) []PrescriptionResponse {
	out := make([]PrescriptionResponse, len(list))
	for i, p := range list {
		out[i] = ToPrescriptionResponse(p)
	}
	return out
}
