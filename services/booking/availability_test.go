package booking

import (
	"context"
	"testing"
	"time"

	"clinicore/models"

	"github.com/google/uuid"
)

func TestAvailabilityDividesWindow(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)

	result, err := svc.Availability(context.Background(), doc.ID.String(), upcoming(time.Monday))
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(result.Slots) != 4 {
		t.Fatalf("got %d slots, want 4: %+v", len(result.Slots), result.Slots)
	}
	if result.Slots[0].Start != "09:00" || result.Slots[3].End != "11:00" {
		t.Errorf("window bounds wrong: first=%+v last=%+v", result.Slots[0], result.Slots[3])
	}
	if result.Reason != "" {
		t.Errorf("reason = %q, want empty", result.Reason)
	}
}

func TestAvailabilityExcludesHeldSlots(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	appt := &models.Appointment{
		ID:            uuid.New(),
		DoctorID:      doc.ID,
		PatientEmail:  "pat@example.com",
		Date:          date,
		Weekday:       time.Monday,
		StartTime:     "09:30",
		EndTime:       "10:00",
		PaymentStatus: models.PaymentStatusPaid,
		Status:        models.AppointmentStatusScheduled,
		OrderID:       uuid.New().String(),
	}
	if err := db.Create(appt).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	result, err := svc.Availability(context.Background(), doc.ID.String(), date)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(result.Slots) != 3 {
		t.Fatalf("got %d slots, want 3: %+v", len(result.Slots), result.Slots)
	}
	for _, s := range result.Slots {
		if s.Start == "09:30" {
			t.Fatalf("held slot 09:30 still offered")
		}
	}
}

func TestAvailabilityIgnoresCanceledAndExpiredHolds(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	canceled := &models.Appointment{
		ID:            uuid.New(),
		DoctorID:      doc.ID,
		PatientEmail:  "a@example.com",
		Date:          date,
		Weekday:       time.Monday,
		StartTime:     "09:00",
		EndTime:       "09:30",
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.AppointmentStatusCanceled,
		OrderID:       uuid.New().String(),
	}
	expiredAt := time.Now().UTC().Add(-time.Hour)
	expired := &models.Appointment{
		ID:               uuid.New(),
		DoctorID:         doc.ID,
		PatientEmail:     "b@example.com",
		Date:             date,
		Weekday:          time.Monday,
		StartTime:        "09:30",
		EndTime:          "10:00",
		PaymentStatus:    models.PaymentStatusPending,
		Status:           models.AppointmentStatusScheduled,
		OrderID:          uuid.New().String(),
		SessionExpiresAt: &expiredAt,
	}
	if err := db.Create(canceled).Error; err != nil {
		t.Fatalf("seed canceled: %v", err)
	}
	if err := db.Create(expired).Error; err != nil {
		t.Fatalf("seed expired: %v", err)
	}

	result, err := svc.Availability(context.Background(), doc.ID.String(), date)
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(result.Slots) != 4 {
		t.Fatalf("got %d slots, want all 4: %+v", len(result.Slots), result.Slots)
	}
}

func TestAvailabilityPastDate(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)

	result, err := svc.Availability(context.Background(), doc.ID.String(), "2020-01-06")
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(result.Slots) != 0 || result.Reason != models.AvailabilityReasonPastDate {
		t.Fatalf("got slots=%d reason=%q, want empty/%s", len(result.Slots), result.Reason, models.AvailabilityReasonPastDate)
	}
}

func TestAvailabilityNoSchedule(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)

	result, err := svc.Availability(context.Background(), doc.ID.String(), upcoming(time.Tuesday))
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if len(result.Slots) != 0 || result.Reason != models.AvailabilityReasonNoSchedule {
		t.Fatalf("got slots=%d reason=%q, want empty/%s", len(result.Slots), result.Reason, models.AvailabilityReasonNoSchedule)
	}
}

func TestAvailabilityDayToggledOff(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	sched := seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	if err := db.Model(sched).Update("available", false).Error; err != nil {
		t.Fatalf("toggle schedule: %v", err)
	}

	result, err := svc.Availability(context.Background(), doc.ID.String(), upcoming(time.Monday))
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if result.Reason != models.AvailabilityReasonUnavailable {
		t.Fatalf("reason = %q, want %s", result.Reason, models.AvailabilityReasonUnavailable)
	}
}

func TestAvailabilityInactiveDoctor(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	if err := db.Model(doc).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate doctor: %v", err)
	}

	result, err := svc.Availability(context.Background(), doc.ID.String(), upcoming(time.Monday))
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if result.Reason != models.AvailabilityReasonUnavailable {
		t.Fatalf("reason = %q, want %s", result.Reason, models.AvailabilityReasonUnavailable)
	}
}

func TestAvailabilityUnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Availability(context.Background(), uuid.New().String(), upcoming(time.Monday))
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("got %v, want %s", err, CodeNotFound)
	}
}

func TestAvailabilityRejectsMalformedInput(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Availability(context.Background(), "not-a-uuid", "2030-01-01"); !IsCode(err, CodeValidation) {
		t.Errorf("bad doctor id: got %v, want %s", err, CodeValidation)
	}
	if _, err := svc.Availability(context.Background(), uuid.New().String(), "01/01/2030"); !IsCode(err, CodeValidation) {
		t.Errorf("bad date: got %v, want %s", err, CodeValidation)
	}
}
