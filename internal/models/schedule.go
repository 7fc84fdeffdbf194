package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type ScheduleType string

const (
	ScheduleDaily   ScheduleType = "DAILY"
	ScheduleWeekly  ScheduleType = "WEEKLY"
	ScheduleMonthly ScheduleType = "MONTHLY"
)

// timeOfDayPattern matches a 24-hour HH:MM time-of-day string.
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Schedule is a recurrence rule attached to a predefined task. ScheduleOn
// holds the time of day in HH:MM; Weekday and DayOfMonth carry the extra
// data the WEEKLY and MONTHLY variants need to decide whether they are due.
type Schedule struct {
	ID               uint64       `gorm:"primarykey" json:"id"`
	PredefinedTaskID uint64       `gorm:"not null;index" json:"predefinedTaskId"`
	ScheduleType     ScheduleType `gorm:"type:varchar(20);not null" json:"scheduleType"`
	ScheduleOn       string       `gorm:"type:varchar(5);not null" json:"scheduleOn"`
	Weekday          *int         `json:"weekday,omitempty"`
	DayOfMonth       *int         `json:"dayOfMonth,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`

	// Relations
	PredefinedTask *PredefinedTask `gorm:"foreignKey:PredefinedTaskID" json:"-"`
}

// Validate checks the recurrence rule for internal consistency.
func (s *Schedule) Validate() error {
	if _, _, err := ParseTimeOfDay(s.ScheduleOn); err != nil {
		return err
	}

	switch s.ScheduleType {
	case ScheduleDaily:
		return nil
	case ScheduleWeekly:
		if s.Weekday == nil || *s.Weekday < 0 || *s.Weekday > 6 {
			return fmt.Errorf("weekly schedule requires a weekday between 0 and 6")
		}
		return nil
	case ScheduleMonthly:
		if s.DayOfMonth == nil || *s.DayOfMonth < 1 || *s.DayOfMonth > 31 {
			return fmt.Errorf("monthly schedule requires a day of month between 1 and 31")
		}
		return nil
	default:
		return fmt.Errorf("unknown schedule type %q", s.ScheduleType)
	}
}

// DueOn reports whether the schedule produces a task on the given calendar day.
func (s *Schedule) DueOn(day time.Time) bool {
	switch s.ScheduleType {
	case ScheduleDaily:
		return true
	case ScheduleWeekly:
		return s.Weekday != nil && int(day.Weekday()) == *s.Weekday
	case ScheduleMonthly:
		return s.DayOfMonth != nil && day.Day() == *s.DayOfMonth
	default:
		return false
	}
}

// At combines the schedule's time of day with the given calendar day,
// producing the concrete timestamp in the day's location.
func (s *Schedule) At(day time.Time) time.Time {
	hour, minute, _ := ParseTimeOfDay(s.ScheduleOn)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// ParseTimeOfDay parses an HH:MM 24-hour time-of-day string.
func ParseTimeOfDay(value string) (hour, minute int, err error) {
	if !timeOfDayPattern.MatchString(value) {
		return 0, 0, fmt.Errorf("time %q must be in HH:MM format", value)
	}
	parts := strings.SplitN(value, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute, nil
}
