package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	appointmentRepo "clinicore/database/repository/appointment"
	"clinicore/models"

	"github.com/google/uuid"
)

// sessionStoreFailRepo fails SetCheckoutSession while armed, passing every
// other operation through.
type sessionStoreFailRepo struct {
	appointmentRepo.AppointmentRepository
	fail bool
}

func (r *sessionStoreFailRepo) SetCheckoutSession(ctx context.Context, id uuid.UUID, sessionID string, expiresAt time.Time) error {
	if r.fail {
		return errors.New("session store down")
	}
	return r.AppointmentRepository.SetCheckoutSession(ctx, id, sessionID, expiresAt)
}

func TestReserveCreatesPendingAppointment(t *testing.T) {
	svc, gw, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	patientID := uuid.New()

	resp, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         upcoming(time.Monday),
		StartTime:    "09:30",
		PatientEmail: "pat@example.com",
		PatientName:  "Pat Doe",
	}, &patientID)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if resp.SessionID == "" || resp.RedirectURL == "" {
		t.Fatalf("missing checkout session in response: %+v", resp)
	}
	if gw.sessions != 1 {
		t.Fatalf("gateway sessions = %d, want 1", gw.sessions)
	}

	var appt models.Appointment
	if err := db.First(&appt, "id = ?", resp.AppointmentID).Error; err != nil {
		t.Fatalf("load appointment: %v", err)
	}
	if appt.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("payment status = %s, want pending", appt.PaymentStatus)
	}
	if appt.Status != models.AppointmentStatusScheduled {
		t.Errorf("status = %s, want scheduled", appt.Status)
	}
	if appt.EndTime != "10:00" {
		t.Errorf("end time = %s, want 10:00 (derived from slot grid)", appt.EndTime)
	}
	if appt.CheckoutSessionID != resp.SessionID {
		t.Errorf("stored session id = %s, want %s", appt.CheckoutSessionID, resp.SessionID)
	}
	if appt.PatientUserID == nil || *appt.PatientUserID != patientID {
		t.Errorf("patient link not stored")
	}
	if appt.SessionExpiresAt == nil {
		t.Errorf("session expiry not stored")
	}
}

func TestReserveConflictOnHeldSlot(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	input := models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:00",
		PatientEmail: "first@example.com",
	}
	if _, err := svc.Reserve(context.Background(), input, nil); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}

	input.PatientEmail = "second@example.com"
	_, err := svc.Reserve(context.Background(), input, nil)
	if !IsCode(err, CodeSlotConflict) {
		t.Fatalf("second Reserve: got %v, want %s", err, CodeSlotConflict)
	}

	// The other slots of the day stay bookable.
	input.StartTime = "09:30"
	if _, err := svc.Reserve(context.Background(), input, nil); err != nil {
		t.Fatalf("adjacent slot: %v", err)
	}
}

func TestReserveReclaimsExpiredHold(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	expiredAt := time.Now().UTC().Add(-time.Minute)
	stale := &models.Appointment{
		ID:               uuid.New(),
		DoctorID:         doc.ID,
		PatientEmail:     "slow@example.com",
		Date:             date,
		Weekday:          time.Monday,
		StartTime:        "09:00",
		EndTime:          "09:30",
		PaymentStatus:    models.PaymentStatusPending,
		Status:           models.AppointmentStatusScheduled,
		OrderID:          uuid.New().String(),
		SessionExpiresAt: &expiredAt,
	}
	if err := db.Create(stale).Error; err != nil {
		t.Fatalf("seed stale hold: %v", err)
	}

	resp, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:00",
		PatientEmail: "fast@example.com",
	}, nil)
	if err != nil {
		t.Fatalf("Reserve over expired hold: %v", err)
	}

	var old models.Appointment
	if err := db.First(&old, "id = ?", stale.ID).Error; err != nil {
		t.Fatalf("load stale hold: %v", err)
	}
	if old.Status != models.AppointmentStatusCanceled {
		t.Errorf("stale hold status = %s, want canceled", old.Status)
	}
	var fresh models.Appointment
	if err := db.First(&fresh, "id = ?", resp.AppointmentID).Error; err != nil {
		t.Fatalf("load new reservation: %v", err)
	}
	if fresh.StartTime != "09:00" {
		t.Errorf("new reservation start = %s, want 09:00", fresh.StartTime)
	}
}

func TestReserveRejectsOverlapAfterGridChange(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	sched := seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	// Book 09:30-10:00 on the 30-minute grid.
	if _, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:30",
		PatientEmail: "first@example.com",
	}, nil); err != nil {
		t.Fatalf("first Reserve: %v", err)
	}

	// Widen the grid. 09:00-10:00 is now a valid grid slot whose start time
	// differs from the held row but whose interval straddles it.
	if err := db.Model(sched).Update("slot_minutes", 60).Error; err != nil {
		t.Fatalf("widen grid: %v", err)
	}

	_, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:00",
		PatientEmail: "second@example.com",
	}, nil)
	if !IsCode(err, CodeSlotConflict) {
		t.Fatalf("overlapping reserve: got %v, want %s", err, CodeSlotConflict)
	}

	var live int64
	if err := db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status <> ?", doc.ID, date, models.AppointmentStatusCanceled).
		Count(&live).Error; err != nil {
		t.Fatalf("count live rows: %v", err)
	}
	if live != 1 {
		t.Fatalf("%d overlapping live appointments, want 1", live)
	}
}

func TestReserveRejectsOffGridStart(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	for _, start := range []string{"09:15", "08:30", "10:45", "11:00"} {
		_, err := svc.Reserve(context.Background(), models.ReserveInput{
			DoctorID:     doc.ID.String(),
			Date:         date,
			StartTime:    start,
			PatientEmail: "pat@example.com",
		}, nil)
		if !IsCode(err, CodeValidation) {
			t.Errorf("start %s: got %v, want %s", start, err, CodeValidation)
		}
	}
}

func TestReserveRejectsPastDate(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)

	_, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         "2020-01-06",
		StartTime:    "09:00",
		PatientEmail: "pat@example.com",
	}, nil)
	if !IsCode(err, CodeValidation) {
		t.Fatalf("got %v, want %s", err, CodeValidation)
	}
}

func TestReserveReleasesSlotWhenSessionStoreFails(t *testing.T) {
	svc, _, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	failing := &sessionStoreFailRepo{AppointmentRepository: svc.ApptRepo, fail: true}
	svc.ApptRepo = failing

	input := models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:00",
		PatientEmail: "pat@example.com",
	}
	_, err := svc.Reserve(context.Background(), input, nil)
	if !IsCode(err, CodeServiceUnavailable) {
		t.Fatalf("got %v, want %s", err, CodeServiceUnavailable)
	}

	// The pending row must not keep holding the slot: it has no stored
	// expiry and no sweep was scheduled.
	failing.fail = false
	if _, err := svc.Reserve(context.Background(), input, nil); err != nil {
		t.Fatalf("retry after store recovery: %v", err)
	}
}

func TestReserveReleasesSlotWhenCheckoutFails(t *testing.T) {
	svc, gw, db := newTestService(t)
	doc := seedDoctor(t, db)
	seedSchedule(t, db, doc.ID, time.Monday, "09:00", "11:00", 30)
	date := upcoming(time.Monday)

	gw.createErr = errors.New("gateway down")
	_, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:00",
		PatientEmail: "pat@example.com",
	}, nil)
	if !IsCode(err, CodeServiceUnavailable) {
		t.Fatalf("got %v, want %s", err, CodeServiceUnavailable)
	}

	// The failed attempt must not strand a pending hold on the slot.
	gw.createErr = nil
	if _, err := svc.Reserve(context.Background(), models.ReserveInput{
		DoctorID:     doc.ID.String(),
		Date:         date,
		StartTime:    "09:00",
		PatientEmail: "pat@example.com",
	}, nil); err != nil {
		t.Fatalf("retry after gateway recovery: %v", err)
	}
}
