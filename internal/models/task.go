package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusOngoing   TaskStatus = "ONGOING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

// ValidTaskStatus reports whether s is one of the known lifecycle states.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusOngoing, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Task is a concrete, dated occurrence of a task. ScheduleID is set when the
// task was materialized from a recurrence rule and nil for ad-hoc instances.
// The unique index on (schedule_id, scheduled_day) is what guarantees at most
// one materialized task per schedule per calendar day; NULL schedule IDs are
// exempt from the constraint.
type Task struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	PredefinedTaskID *uint64        `gorm:"index" json:"predefinedTaskId"`
	ScheduleID       *uint64        `gorm:"uniqueIndex:idx_tasks_schedule_day" json:"scheduleId"`
	ScheduledOn      time.Time      `gorm:"not null;index" json:"scheduledOn"`
	ScheduledDay     time.Time      `gorm:"type:date;uniqueIndex:idx_tasks_schedule_day" json:"-"`
	Status           TaskStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	AssignedTo       *uint64        `gorm:"index" json:"assignedTo"`
	Duration         *int           `json:"duration"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	PredefinedTask *PredefinedTask `gorm:"foreignKey:PredefinedTaskID" json:"predefinedTask,omitempty"`
	Schedule       *Schedule       `gorm:"foreignKey:ScheduleID" json:"-"`
	Assignee       *User           `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

// BeforeSave keeps the derived calendar-day column in sync with ScheduledOn.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	t.ScheduledDay = time.Date(
		t.ScheduledOn.Year(), t.ScheduledOn.Month(), t.ScheduledOn.Day(),
		0, 0, 0, 0, t.ScheduledOn.Location(),
	)
	return nil
}
