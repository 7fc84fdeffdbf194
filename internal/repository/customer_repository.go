package repository

import (
	"gorm.io/gorm"

	"github.com/yamaneko/cat-care-api/internal/models"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *GormCustomerRepository) FindByID(id uint64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

func (r *GormCustomerRepository) List(page, pageSize int) ([]models.Customer, int64, error) {
	var customers []models.Customer

	query := r.db.Model(&models.Customer{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Summary returns customers matching the optional type filter, newest first
func (r *GormCustomerRepository) Summary(customerType *string) ([]models.Customer, error) {
	var customers []models.Customer

	query := r.db.Model(&models.Customer{})
	if customerType != nil {
		query = query.Where("type = ?", *customerType)
	}

	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *GormCustomerRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Customer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
