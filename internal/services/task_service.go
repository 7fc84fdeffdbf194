package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("scheduled task not found")
	ErrAssigneeNotFound = errors.New("user not found")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidDuration  = errors.New("duration must be a positive integer")
)

// TaskService handles scheduled task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	templateRepo repository.PredefinedTaskRepository
	userRepo     repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, templateRepo repository.PredefinedTaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
	}
}

// taskPreloads are the relations loaded for single-task responses.
var taskPreloads = []string{"PredefinedTask", "Assignee"}

// CreateTaskInput represents input for creating a scheduled task
type CreateTaskInput struct {
	PredefinedTaskID uint64
	ScheduledOn      time.Time
	Duration         *int
	Status           models.TaskStatus
	AssignedTo       *uint64
}

// UpdateTaskInput represents partial input for updating a scheduled task
type UpdateTaskInput struct {
	PredefinedTaskID *uint64
	ScheduledOn      *time.Time
	Duration         *int
	Status           *models.TaskStatus
	AssignedTo       *uint64
}

// ListTasks returns scheduled tasks ordered by scheduled timestamp
func (s *TaskService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a scheduled task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates an ad-hoc scheduled task. Referenced entities are
// verified before the write so a failure never leaves a dangling reference.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := s.ensureTemplateExists(input.PredefinedTaskID); err != nil {
		return nil, err
	}
	if err := s.ensureAssigneeExists(input.AssignedTo); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if input.Duration != nil && *input.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	templateID := input.PredefinedTaskID
	task := &models.Task{
		PredefinedTaskID: &templateID,
		ScheduledOn:      input.ScheduledOn.UTC(),
		Duration:         input.Duration,
		Status:           input.Status,
		AssignedTo:       input.AssignedTo,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTask applies a partial update to an existing scheduled task
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.PredefinedTaskID != nil {
		if err := s.ensureTemplateExists(*input.PredefinedTaskID); err != nil {
			return nil, err
		}
		task.PredefinedTaskID = input.PredefinedTaskID
	}
	if input.AssignedTo != nil {
		if err := s.ensureAssigneeExists(input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.ScheduledOn != nil {
		scheduledOn := input.ScheduledOn.UTC()
		task.ScheduledOn = scheduledOn
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			return nil, ErrInvalidDuration
		}
		task.Duration = input.Duration
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask deletes a scheduled task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) ensureTemplateExists(id uint64) error {
	exists, err := s.templateRepo.Exists(id)
	if err != nil {
		return fmt.Errorf("failed to verify predefined task: %w", err)
	}
	if !exists {
		return ErrPredefinedTaskNotFound
	}
	return nil
}

func (s *TaskService) ensureAssigneeExists(id *uint64) error {
	if id == nil {
		return nil
	}
	exists, err := s.userRepo.Exists(*id)
	if err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}
	if !exists {
		return ErrAssigneeNotFound
	}
	return nil
}
