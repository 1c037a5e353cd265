package database

import (
	"fmt"
	"log"
	"time"

	"clinicore/config"
	"clinicore/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global GORM handle.
var DB *gorm.DB

// InitDB opens the Postgres connection and runs migrations.
func InitDB() {
	cfg := config.AppConfig
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Surfaces unique-constraint violations as gorm.ErrDuplicatedKey so
		// the appointment repository can report slot conflicts.
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	DB = db
	log.Println("Connected to Postgres successfully!")
}

// AutoMigrate creates the schema and the slot-uniqueness constraint.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Doctor{},
		&models.DoctorSchedule{},
		&models.Appointment{},
		&models.AppointmentNotification{},
	); err != nil {
		return err
	}

	// One non-canceled appointment per (doctor, date, start_time). Canceled
	// rows are excluded so a freed slot can be rebooked. This is the
	// serialization point for concurrent reservations; the repository
	// translates violations into a slot conflict. Partial index syntax is
	// shared by Postgres and the SQLite used in tests.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
		 ON appointments (doctor_id, date, start_time)
		 WHERE status <> 'canceled'`,
	).Error
}
