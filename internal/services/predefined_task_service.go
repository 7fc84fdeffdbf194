package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
)

var (
	ErrPredefinedTaskNotFound = errors.New("predefined task not found")
	ErrTaskNameRequired       = errors.New("task name is required")
	ErrInvalidSchedule        = errors.New("invalid schedule")
)

// PredefinedTaskService handles task template business logic
type PredefinedTaskService struct {
	templateRepo repository.PredefinedTaskRepository
}

// NewPredefinedTaskService creates a new PredefinedTaskService
func NewPredefinedTaskService(templateRepo repository.PredefinedTaskRepository) *PredefinedTaskService {
	return &PredefinedTaskService{templateRepo: templateRepo}
}

// RecurringInput represents one recurrence rule in create/update payloads
type RecurringInput struct {
	Type       models.ScheduleType
	Time       string
	Weekday    *int
	DayOfMonth *int
}

// PredefinedTaskInput represents input for creating or updating a template
type PredefinedTaskInput struct {
	Name        string
	Description string
	Recurring   []RecurringInput
}

// ListPredefinedTasks returns templates with their schedules, newest first
func (s *PredefinedTaskService) ListPredefinedTasks(page, pageSize int) ([]models.PredefinedTask, int64, error) {
	tasks, total, err := s.templateRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list predefined tasks: %w", err)
	}
	return tasks, total, nil
}

// GetPredefinedTask returns a template with its schedules
func (s *PredefinedTaskService) GetPredefinedTask(id uint64) (*models.PredefinedTask, error) {
	task, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPredefinedTaskNotFound
		}
		return nil, fmt.Errorf("failed to find predefined task: %w", err)
	}
	return task, nil
}

// CreatePredefinedTask creates a template together with its recurrence rules
func (s *PredefinedTaskService) CreatePredefinedTask(input PredefinedTaskInput) (*models.PredefinedTask, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}

	schedules, err := buildSchedules(input.Recurring)
	if err != nil {
		return nil, err
	}

	task := &models.PredefinedTask{
		Name:        name,
		Description: input.Description,
		Schedules:   schedules,
	}

	if err := s.templateRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create predefined task: %w", err)
	}

	return s.templateRepo.FindByID(task.ID)
}

// UpdatePredefinedTask updates template fields. Recurrence rules in the
// payload are appended to the existing set, never replacing it.
func (s *PredefinedTaskService) UpdatePredefinedTask(id uint64, input PredefinedTaskInput) (*models.PredefinedTask, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}

	task, err := s.templateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPredefinedTaskNotFound
		}
		return nil, fmt.Errorf("failed to find predefined task: %w", err)
	}

	schedules, err := buildSchedules(input.Recurring)
	if err != nil {
		return nil, err
	}

	task.Name = name
	task.Description = input.Description

	if err := s.templateRepo.Update(task, schedules); err != nil {
		return nil, fmt.Errorf("failed to update predefined task: %w", err)
	}

	return s.templateRepo.FindByID(task.ID)
}

// DeletePredefinedTask removes a template and its schedules
func (s *PredefinedTaskService) DeletePredefinedTask(id uint64) error {
	if err := s.templateRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPredefinedTaskNotFound
		}
		return fmt.Errorf("failed to delete predefined task: %w", err)
	}
	return nil
}

func buildSchedules(recurring []RecurringInput) ([]models.Schedule, error) {
	if len(recurring) == 0 {
		return nil, nil
	}

	schedules := make([]models.Schedule, 0, len(recurring))
	for _, r := range recurring {
		sched := models.Schedule{
			ScheduleType: r.Type,
			ScheduleOn:   r.Time,
			Weekday:      r.Weekday,
			DayOfMonth:   r.DayOfMonth,
		}
		if err := sched.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		schedules = append(schedules, sched)
	}
	return schedules, nil
}
