package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yamaneko/cat-care-api/internal/constants"
	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
)

// ErrInvalidDate is returned when a date path segment cannot be parsed into a
// calendar date.
var ErrInvalidDate = errors.New("invalid date format")

// Materializer expands due recurrence rules into concrete task instances for
// a calendar date. All date arithmetic is done in UTC; a day is the half-open
// window [00:00, next day 00:00).
type Materializer struct {
	taskRepo     repository.TaskRepository
	templateRepo repository.PredefinedTaskRepository
	log          *logrus.Logger
}

// NewMaterializer creates a new Materializer
func NewMaterializer(taskRepo repository.TaskRepository, templateRepo repository.PredefinedTaskRepository, log *logrus.Logger) *Materializer {
	return &Materializer{
		taskRepo:     taskRepo,
		templateRepo: templateRepo,
		log:          log,
	}
}

// MaterializeAndListForDate parses the date string, ensures every due
// schedule has exactly one task instance on that date, and returns the full
// day's tasks ordered by scheduled timestamp.
func (m *Materializer) MaterializeAndListForDate(dateStr string) ([]models.Task, error) {
	day, err := ParseDate(dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return m.MaterializeDay(day)
}

// MaterializeDay runs materialization for the given UTC calendar day.
//
// Each due schedule is handled with a single conditional insert, so the run
// is idempotent and safe against concurrent invocations for the same date.
// A storage failure aborts the run; instances created before the failure
// stay in place and a retry converges without duplicates.
func (m *Materializer) MaterializeDay(day time.Time) ([]models.Task, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	schedules, err := m.templateRepo.ListSchedules()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}

	created := 0
	for _, sched := range schedules {
		if !sched.DueOn(start) {
			continue
		}

		scheduleID := sched.ID
		templateID := sched.PredefinedTaskID
		task := &models.Task{
			PredefinedTaskID: &templateID,
			ScheduleID:       &scheduleID,
			ScheduledOn:      sched.At(start),
			Status:           models.TaskStatusPending,
		}

		inserted, err := m.taskRepo.CreateFromSchedule(task)
		if err != nil {
			return nil, fmt.Errorf("failed to materialize schedule %d: %w", sched.ID, err)
		}
		if inserted {
			created++
		}
	}

	if created > 0 {
		m.log.WithFields(logrus.Fields{
			"date":    start.Format(constants.DateLayout),
			"created": created,
		}).Info("Materialized recurring tasks")
	}

	return m.taskRepo.ListByWindow(start, end)
}

// ParseDate parses a calendar date from a YYYY-MM-DD string. RFC 3339
// timestamps are also accepted; only their date part is kept. The result is
// midnight UTC of that day.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(constants.DateLayout, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a calendar date", value)
}
