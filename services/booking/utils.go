package booking

import (
	"errors"
	"fmt"
	"time"

	"clinicore/models"

	"gorm.io/gorm"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// clockToMinutes parses an "HH:MM" string into minutes from midnight.
func clockToMinutes(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// minutesToClock renders minutes from midnight back into "HH:MM".
func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// buildSlots partitions [start, end) minutes into size-minute slots. Only
// full slots are produced; start == end yields none.
func buildSlots(startMin, endMin, size int) []models.Slot {
	slots := []models.Slot{}
	for t := startMin; t+size <= endMin; t += size {
		slots = append(slots, models.Slot{
			Start: minutesToClock(t),
			End:   minutesToClock(t + size),
		})
	}
	return slots
}

// overlaps is the slot-conflict test: requested_start < existing_end AND
// requested_end > existing_start. "HH:MM" is fixed width, so plain string
// comparison orders correctly.
func overlaps(slot models.Slot, appt models.Appointment) bool {
	return slot.Start < appt.EndTime && slot.End > appt.StartTime
}

const (
	readRetryAttempts = 2
	readRetryBackoff  = 100 * time.Millisecond
)

// retryRead retries an idempotent read a bounded number of times on
// transient store errors. Not-found is a result, not a transient failure.
// Mutating operations are never routed through here.
func retryRead(op func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = op()
		if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if attempt >= readRetryAttempts {
			return err
		}
		time.Sleep(readRetryBackoff * time.Duration(attempt+1))
	}
}
