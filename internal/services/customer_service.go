package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yamaneko/cat-care-api/internal/constants"
	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNameRequired     = errors.New("name is required")
	ErrGenderRequired   = errors.New("gender is required")
	ErrInvalidBirthday  = errors.New("invalid birthday")
)

// CustomerService handles customer profile business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents input for creating or updating a customer
type CustomerInput struct {
	Name     string
	Gender   string
	Type     string
	Birthday *string
	Breed    *string
}

func (s *CustomerService) ListCustomers(page, pageSize int) ([]models.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

func (s *CustomerService) GetCustomer(id uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// CustomerSummary returns customer profiles for the dashboard, optionally
// filtered by type discriminator
func (s *CustomerService) CustomerSummary(customerType *string) ([]models.Customer, error) {
	customers, err := s.customerRepo.Summary(customerType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customer summary: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) CreateCustomer(input CustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(input.Gender) == "" {
		return nil, ErrGenderRequired
	}

	birthday, err := parseBirthday(input.Birthday)
	if err != nil {
		return nil, err
	}

	customerType := input.Type
	if customerType == "" {
		customerType = "cat"
	}

	customer := &models.Customer{
		Name:     input.Name,
		Gender:   input.Gender,
		Type:     customerType,
		Birthday: birthday,
		Breed:    input.Breed,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) UpdateCustomer(id uint64, input CustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Gender != "" {
		customer.Gender = input.Gender
	}
	if input.Type != "" {
		customer.Type = input.Type
	}
	if input.Birthday != nil {
		birthday, err := parseBirthday(input.Birthday)
		if err != nil {
			return nil, err
		}
		customer.Birthday = birthday
	}
	if input.Breed != nil {
		customer.Breed = input.Breed
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(id uint64) error {
	if err := s.customerRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// parseBirthday accepts a calendar date or an RFC 3339 timestamp.
func parseBirthday(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if t, err := time.Parse(constants.DateLayout, *value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, *value); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidBirthday
}
