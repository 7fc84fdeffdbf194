package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yamaneko/cat-care-api/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. It is the
// only not-found signal layers above this package ever see; driver-specific
// error values stay behind this boundary.
var ErrNotFound = errors.New("repository: record not found")

// translate maps driver errors to the package's error vocabulary.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// TaskRepository defines the interface for scheduled task data access
type TaskRepository interface {
	// Create creates a new task instance
	Create(task *models.Task) error

	// CreateFromSchedule conditionally inserts a materialized task. It reports
	// whether a row was actually inserted; a conflict on the
	// (schedule_id, scheduled_day) unique index means the day's instance
	// already exists and is not an error.
	CreateFromSchedule(task *models.Task) (bool, error)

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, ordered by
	// scheduled timestamp ascending
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByWindow returns tasks whose scheduled timestamp falls in
	// [from, to), ordered by scheduled timestamp ascending
	ListByWindow(from, to time.Time) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	AssignedTo *uint64
	Page       int
	PageSize   int
}

// PredefinedTaskRepository defines the interface for task template data access
type PredefinedTaskRepository interface {
	// Create creates a template together with its schedules
	Create(task *models.PredefinedTask) error

	// FindByID finds a template by ID with its schedules
	FindByID(id uint64) (*models.PredefinedTask, error)

	// Exists reports whether a template with the given ID exists
	Exists(id uint64) (bool, error)

	// List retrieves templates with their schedules, newest first
	List(page, pageSize int) ([]models.PredefinedTask, int64, error)

	// Update updates the template fields and appends any new schedules
	Update(task *models.PredefinedTask, newSchedules []models.Schedule) error

	// Delete removes a template, its schedules, and detaches existing task
	// instances in a single transaction
	Delete(id uint64) error

	// ListSchedules returns every recurrence rule across all templates
	ListSchedules() ([]models.Schedule, error)
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(customer *models.Customer) error
	FindByID(id uint64) (*models.Customer, error)
	List(page, pageSize int) ([]models.Customer, int64, error)

	// Summary returns customers matching the optional type filter, newest first
	Summary(customerType *string) ([]models.Customer, error)

	Update(customer *models.Customer) error
	Delete(id uint64) error
}

// CatRepository defines the interface for cat profile data access
type CatRepository interface {
	Create(cat *models.Cat) error
	FindByID(id uint64) (*models.Cat, error)
	List(page, pageSize int) ([]models.Cat, int64, error)
	Update(cat *models.Cat) error
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(id uint64) (bool, error)

	// List returns all users, newest first
	List() ([]models.User, error)
}
