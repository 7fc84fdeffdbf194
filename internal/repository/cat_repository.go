package repository

import (
	"gorm.io/gorm"

	"github.com/yamaneko/cat-care-api/internal/models"
)

// GormCatRepository is a GORM implementation of CatRepository
type GormCatRepository struct {
	db *gorm.DB
}

// NewCatRepository creates a new CatRepository
func NewCatRepository(db *gorm.DB) CatRepository {
	return &GormCatRepository{db: db}
}

func (r *GormCatRepository) Create(cat *models.Cat) error {
	return r.db.Create(cat).Error
}

func (r *GormCatRepository) FindByID(id uint64) (*models.Cat, error) {
	var cat models.Cat
	if err := r.db.First(&cat, id).Error; err != nil {
		return nil, translate(err)
	}
	return &cat, nil
}

func (r *GormCatRepository) List(page, pageSize int) ([]models.Cat, int64, error) {
	var cats []models.Cat

	query := r.db.Model(&models.Cat{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Find(&cats).Error; err != nil {
		return nil, 0, err
	}

	return cats, total, nil
}

func (r *GormCatRepository) Update(cat *models.Cat) error {
	return r.db.Save(cat).Error
}

func (r *GormCatRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Cat{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
