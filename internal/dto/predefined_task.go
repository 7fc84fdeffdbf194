package dto

import (
	"time"

	"github.com/yamaneko/cat-care-api/internal/models"
)

// ScheduleDTO represents a recurrence rule in API responses
type ScheduleDTO struct {
	ID         uint64              `json:"id"`
	Type       models.ScheduleType `json:"type"`
	Time       string              `json:"time"`
	Weekday    *int                `json:"weekday,omitempty"`
	DayOfMonth *int                `json:"dayOfMonth,omitempty"`
}

// PredefinedTaskDTO represents a task template in API responses
type PredefinedTaskDTO struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Schedules   []ScheduleDTO `json:"schedules"`
}

// ToScheduleDTO converts a Schedule model to ScheduleDTO
func ToScheduleDTO(schedule models.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:         schedule.ID,
		Type:       schedule.ScheduleType,
		Time:       schedule.ScheduleOn,
		Weekday:    schedule.Weekday,
		DayOfMonth: schedule.DayOfMonth,
	}
}

// ToPredefinedTaskDTO converts a PredefinedTask model to PredefinedTaskDTO
func ToPredefinedTaskDTO(task models.PredefinedTask) PredefinedTaskDTO {
	schedules := make([]ScheduleDTO, len(task.Schedules))
	for i, s := range task.Schedules {
		schedules[i] = ToScheduleDTO(s)
	}

	return PredefinedTaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Schedules:   schedules,
	}
}

// ToPredefinedTaskDTOs converts a slice of PredefinedTask models
func ToPredefinedTaskDTOs(tasks []models.PredefinedTask) []PredefinedTaskDTO {
	dtos := make([]PredefinedTaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToPredefinedTaskDTO(task)
	}
	return dtos
}
