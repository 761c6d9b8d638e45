package service

import (
	"context"
	"drnote/internal/application/dto"
	"drnote/internal/domain/constant"
	"drnote/internal/domain/entity"
	"drnote/internal/domain/repository"
	"drnote/internal/infrastructure/database/sqlite"
	appErrors "drnote/internal/pkg/errors"
	"drnote/internal/pkg/logger"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.AppointmentEvent
}

func (p *recordingPublisher) Publish(e entity.AppointmentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []constant.AppointmentEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]constant.AppointmentEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type services struct {
	patients      PatientService
	appointments  AppointmentService
	records       RecordService
	notes         repository.NoteRepository
	prescriptions repository.PrescriptionRepository
	events        *recordingPublisher
}

func newServices(t *testing.T) *services {
	t.Helper()
	log := logger.Nop()
	db, err := sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	patientRepo := sqlite.NewPatientRepository(db)
	appointmentRepo := sqlite.NewAppointmentRepository(db)
	noteRepo := sqlite.NewNoteRepository(db)
	prescriptionRepo := sqlite.NewPrescriptionRepository(db)
	events := &recordingPublisher{}
	return &services{
		patients:      NewPatientService(patientRepo, appointmentRepo, noteRepo, prescriptionRepo, events, log),
		appointments:  NewAppointmentService(appointmentRepo, patientRepo, events, log),
		records:       NewRecordService(patientRepo, noteRepo, prescriptionRepo, log),
		notes:         noteRepo,
		prescriptions: prescriptionRepo,
		events:        events,
	}
}

func (s *services) createPatient(t *testing.T, name string) *dto.PatientResponse {
	t.Helper()
	p, err := s.patients.CreatePatient(context.Background(), dto.PatientRequest{FullName: name})
	require.NoError(t, err)
	return p
}

func TestAppointmentService_CreateGeneratesNotificationID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")

	at := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	a, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: at, Reason: "  Follow-up "})
	require.NoError(t, err)
	b, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: at, Reason: "Labs"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.NotificationID)
	assert.NotEqual(t, a.NotificationID, b.NotificationID)
	assert.Equal(t, "Follow-up", a.Reason)
	assert.Equal(t, constant.AppointmentStatusScheduled, a.Status)
	assert.Equal(t, "J. Smith", a.PatientName)

	require.Len(t, s.events.events, 2)
	e := s.events.events[0]
	assert.Equal(t, constant.AppointmentCreated, e.Type)
	assert.Equal(t, a.NotificationID, e.Appointment.NotificationID)
	assert.Equal(t, "J. Smith", e.Appointment.PatientName())
}

func TestAppointmentService_UpdateKeepsNotificationID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")
	at := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	created, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: at, Reason: "Follow-up"})
	require.NoError(t, err)

	updated, err := s.appointments.UpdateAppointment(ctx, created.ID, dto.AppointmentRequest{PatientID: patient.ID, Date: at.Add(time.Hour), Reason: "Re-check"})
	require.NoError(t, err)
	assert.Equal(t, created.NotificationID, updated.NotificationID)
	assert.Equal(t, "Re-check", updated.Reason)

	got, err := s.appointments.GetAppointment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.NotificationID, got.NotificationID)
	assert.True(t, got.Date.Equal(at.Add(time.Hour)))

	assert.Equal(t, []constant.AppointmentEventType{constant.AppointmentCreated, constant.AppointmentEdited}, s.events.types())
	assert.Equal(t, "Re-check", s.events.events[1].Appointment.Reason)
}

func TestAppointmentService_DeletePublishesBeforeRemoving(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")
	created, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: time.Now().Add(time.Hour), Reason: "Visit"})
	require.NoError(t, err)

	require.NoError(t, s.appointments.DeleteAppointment(ctx, created.ID))

	assert.Equal(t, []constant.AppointmentEventType{constant.AppointmentCreated, constant.AppointmentDeleted}, s.events.types())
	assert.Equal(t, created.NotificationID, s.events.events[1].Appointment.NotificationID)

	_, err = s.appointments.GetAppointment(ctx, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrAppointmentNotFound)
	assert.ErrorIs(t, s.appointments.DeleteAppointment(ctx, created.ID), appErrors.ErrAppointmentNotFound)
}

func TestAppointmentService_Validation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")
	at := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		req  dto.AppointmentRequest
		want error
	}{
		{"missing reason", dto.AppointmentRequest{PatientID: patient.ID, Date: at, Reason: "  "}, appErrors.ErrInvalidInput},
		{"missing date", dto.AppointmentRequest{PatientID: patient.ID, Reason: "Visit"}, appErrors.ErrInvalidDateTime},
		{"unknown status", dto.AppointmentRequest{PatientID: patient.ID, Date: at, Reason: "Visit", Status: "lost"}, appErrors.ErrInvalidInput},
		{"missing patient", dto.AppointmentRequest{Date: at, Reason: "Visit"}, appErrors.ErrInvalidInput},
		{"unknown patient", dto.AppointmentRequest{PatientID: patient.ID + 100, Date: at, Reason: "Visit"}, appErrors.ErrPatientNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.appointments.CreateAppointment(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, s.events.events)
}

func TestAppointmentService_ListRange(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: base.AddDate(0, 0, i), Reason: "Visit"})
		require.NoError(t, err)
	}

	all, err := s.appointments.ListAppointments(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	day, err := s.appointments.ListAppointments(ctx, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.True(t, day[0].Date.Equal(base.AddDate(0, 0, 1)))
}

func TestPatientService_Validation(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	neg := -1

	_, err := s.patients.CreatePatient(ctx, dto.PatientRequest{FullName: " "})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
	_, err = s.patients.CreatePatient(ctx, dto.PatientRequest{FullName: "A", Age: &neg})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
	_, err = s.patients.CreatePatient(ctx, dto.PatientRequest{FullName: "A", Gender: "robot"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)

	p, err := s.patients.CreatePatient(ctx, dto.PatientRequest{FullName: "A"})
	require.NoError(t, err)
	assert.Equal(t, string(constant.GenderUndisclosed), p.Gender)
	assert.Equal(t, "Prefer not to say", p.GenderLabel)
}

func TestPatientService_RenamePublishesEdits(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")
	for _, reason := range []string{"Visit", "Labs"} {
		_, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: time.Now().Add(48 * time.Hour), Reason: reason})
		require.NoError(t, err)
	}

	_, err := s.patients.UpdatePatient(ctx, patient.ID, dto.PatientRequest{FullName: "Jane Smith"})
	require.NoError(t, err)
	require.Len(t, s.events.events, 4)
	for _, e := range s.events.events[2:] {
		assert.Equal(t, constant.AppointmentEdited, e.Type)
		assert.Equal(t, "Jane Smith", e.Appointment.PatientName())
	}

	// Same name: no reminder refresh needed.
	phone := "555-0100"
	_, err = s.patients.UpdatePatient(ctx, patient.ID, dto.PatientRequest{FullName: "Jane Smith", Phone: &phone})
	require.NoError(t, err)
	assert.Len(t, s.events.events, 4)
}

func TestPatientService_DeleteCascades(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	patient := s.createPatient(t, "J. Smith")
	other := s.createPatient(t, "A. Jones")

	var ids []string
	for _, reason := range []string{"Visit", "Labs"} {
		a, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: patient.ID, Date: time.Now().Add(48 * time.Hour), Reason: reason})
		require.NoError(t, err)
		ids = append(ids, a.NotificationID)
	}
	_, err := s.appointments.CreateAppointment(ctx, dto.AppointmentRequest{PatientID: other.ID, Date: time.Now().Add(48 * time.Hour), Reason: "Visit"})
	require.NoError(t, err)

	require.NoError(t, s.patients.DeletePatient(ctx, patient.ID))

	var deleted []string
	for _, e := range s.events.events {
		if e.Type == constant.AppointmentDeleted {
			deleted = append(deleted, e.Appointment.NotificationID)
		}
	}
	assert.ElementsMatch(t, ids, deleted)

	remaining, err := s.appointments.ListAppointments(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].PatientID)

	_, err = s.patients.GetPatient(ctx, patient.ID)
	assert.ErrorIs(t, err, appErrors.ErrPatientNotFound)
}

func TestPatientService_List(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	s.createPatient(t, "Jane Smith")
	s.createPatient(t, "Bob Jones")

	all, err := s.patients.ListPatients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	smiths, err := s.patients.ListPatients(ctx, "Smith")
	require.NoError(t, err)
	require.Len(t, smiths, 1)
	assert.Equal(t, "Jane Smith", smiths[0].FullName)
}
