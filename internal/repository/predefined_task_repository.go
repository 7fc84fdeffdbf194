package repository

import (
	"gorm.io/gorm"

	"github.com/yamaneko/cat-care-api/internal/models"
)

// GormPredefinedTaskRepository is a GORM implementation of PredefinedTaskRepository
type GormPredefinedTaskRepository struct {
	db *gorm.DB
}

// NewPredefinedTaskRepository creates a new PredefinedTaskRepository
func NewPredefinedTaskRepository(db *gorm.DB) PredefinedTaskRepository {
	return &GormPredefinedTaskRepository{db: db}
}

// Create creates a template together with its schedules
func (r *GormPredefinedTaskRepository) Create(task *models.PredefinedTask) error {
	return r.db.Create(task).Error
}

// FindByID finds a template by ID with its schedules
func (r *GormPredefinedTaskRepository) FindByID(id uint64) (*models.PredefinedTask, error) {
	var task models.PredefinedTask
	if err := r.db.Preload("Schedules").First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// Exists reports whether a template with the given ID exists
func (r *GormPredefinedTaskRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PredefinedTask{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves templates with their schedules, newest first
func (r *GormPredefinedTaskRepository) List(page, pageSize int) ([]models.PredefinedTask, int64, error) {
	var tasks []models.PredefinedTask

	query := r.db.Model(&models.PredefinedTask{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Preload("Schedules").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates the template fields and appends any new schedules in a
// single transaction. Existing schedules are never replaced.
func (r *GormPredefinedTaskRepository) Update(task *models.PredefinedTask, newSchedules []models.Schedule) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Updates(map[string]interface{}{
			"name":        task.Name,
			"description": task.Description,
		}).Error; err != nil {
			return err
		}

		if len(newSchedules) == 0 {
			return nil
		}

		for i := range newSchedules {
			newSchedules[i].PredefinedTaskID = task.ID
		}
		return tx.Create(&newSchedules).Error
	})
}

// Delete removes a template, its schedules, and detaches existing task
// instances in a single transaction. Concrete instances keep their rows but
// lose the template and schedule references.
func (r *GormPredefinedTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("predefined_task_id = ?", id).
			Updates(map[string]interface{}{
				"predefined_task_id": nil,
				"schedule_id":        nil,
			}).Error; err != nil {
			return err
		}

		if err := tx.Where("predefined_task_id = ?", id).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.PredefinedTask{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListSchedules returns every recurrence rule across all templates
func (r *GormPredefinedTaskRepository) ListSchedules() ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := r.db.Order("schedule_on ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}
