package dto

import (
	"time"

	"github.com/yamaneko/cat-care-api/internal/models"
)

// TaskDTO represents a scheduled task in API responses
type TaskDTO struct {
	ID               uint64             `json:"id"`
	PredefinedTaskID *uint64            `json:"predefinedTaskId"`
	ScheduleID       *uint64            `json:"scheduleId"`
	ScheduledOn      time.Time          `json:"scheduledOn"`
	Status           models.TaskStatus  `json:"status"`
	AssignedTo       *uint64            `json:"assignedTo"`
	Duration         *int               `json:"duration"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	PredefinedTask   *PredefinedTaskDTO `json:"predefinedTask,omitempty"`
	Assignee         *UserDTO           `json:"assignee,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		PredefinedTaskID: task.PredefinedTaskID,
		ScheduleID:       task.ScheduleID,
		ScheduledOn:      task.ScheduledOn,
		Status:           task.Status,
		AssignedTo:       task.AssignedTo,
		Duration:         task.Duration,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}

	// Include template if preloaded
	if task.PredefinedTask != nil {
		template := ToPredefinedTaskDTO(*task.PredefinedTask)
		dto.PredefinedTask = &template
	}

	// Include assignee if preloaded
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
