package notification

import (
	"context"
	"testing"
	"time"

	"clinicore/database"
	doctorRepo "clinicore/database/repository/doctor"
	notificationRepo "clinicore/database/repository/notification"
	"clinicore/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*DefaultNotificationService, *models.Doctor, *models.Appointment) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	doc := &models.Doctor{ID: uuid.New(), UserID: uuid.New(), Name: "Dr. Varga", Active: true}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	appt := &models.Appointment{
		ID:            uuid.New(),
		DoctorID:      doc.ID,
		PatientEmail:  "pat@example.com",
		Date:          "2031-05-12",
		Weekday:       time.Monday,
		StartTime:     "09:00",
		EndTime:       "09:30",
		PaymentStatus: models.PaymentStatusPaid,
		Status:        models.AppointmentStatusScheduled,
		OrderID:       uuid.New().String(),
	}
	if err := db.Create(appt).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	logger := zap.NewNop()
	svc := &DefaultNotificationService{
		Repo:       notificationRepo.NewGormNotificationRepo(db),
		DoctorRepo: doctorRepo.NewGormDoctorRepo(db),
		Hub:        NewHub(logger),
		Logger:     logger,
	}
	return svc, doc, appt
}

func TestNotifyAppointmentPaidIsIdempotent(t *testing.T) {
	svc, doc, appt := newTestService(t)
	ctx := context.Background()

	if err := svc.NotifyAppointmentPaid(ctx, appt); err != nil {
		t.Fatalf("NotifyAppointmentPaid: %v", err)
	}
	if err := svc.NotifyAppointmentPaid(ctx, appt); err != nil {
		t.Fatalf("second NotifyAppointmentPaid: %v", err)
	}

	items, err := svc.ListForUser(ctx, doc.UserID, false)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d notifications, want 1", len(items))
	}
	if items[0].Type != models.NotificationTypeAppointmentPaid {
		t.Fatalf("type = %s, want %s", items[0].Type, models.NotificationTypeAppointmentPaid)
	}
}

func TestMarkAllReadStampsReadAt(t *testing.T) {
	svc, doc, appt := newTestService(t)
	ctx := context.Background()

	if err := svc.NotifyAppointmentPaid(ctx, appt); err != nil {
		t.Fatalf("NotifyAppointmentPaid: %v", err)
	}

	unread, err := svc.ListForUser(ctx, doc.UserID, true)
	if err != nil {
		t.Fatalf("ListForUser unread: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("got %d unread, want 1", len(unread))
	}

	updated, err := svc.MarkAllRead(ctx, doc.UserID)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if updated != 1 {
		t.Fatalf("MarkAllRead updated %d rows, want 1", updated)
	}

	unread, err = svc.ListForUser(ctx, doc.UserID, true)
	if err != nil {
		t.Fatalf("ListForUser after read: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("got %d unread after MarkAllRead, want 0", len(unread))
	}

	// The stamped timestamp scans back from the store.
	all, err := svc.ListForUser(ctx, doc.UserID, false)
	if err != nil {
		t.Fatalf("ListForUser all: %v", err)
	}
	if len(all) != 1 || all[0].ReadAt == nil {
		t.Fatalf("read timestamp not persisted: %+v", all)
	}
}
