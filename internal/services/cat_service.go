package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
)

var ErrCatNotFound = errors.New("cat not found")

// CatService handles cat profile business logic
type CatService struct {
	catRepo repository.CatRepository
}

// NewCatService creates a new CatService
func NewCatService(catRepo repository.CatRepository) *CatService {
	return &CatService{catRepo: catRepo}
}

// CatInput represents input for creating or updating a cat
type CatInput struct {
	Name     string
	Gender   string
	Birthday *string
	Breed    *string
}

func (s *CatService) ListCats(page, pageSize int) ([]models.Cat, int64, error) {
	cats, total, err := s.catRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cats: %w", err)
	}
	return cats, total, nil
}

func (s *CatService) GetCat(id uint64) (*models.Cat, error) {
	cat, err := s.catRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCatNotFound
		}
		return nil, fmt.Errorf("failed to find cat: %w", err)
	}
	return cat, nil
}

func (s *CatService) CreateCat(input CatInput) (*models.Cat, error) {
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

	cat := &models.Cat{
		Name:     input.Name,
		Gender:   input.Gender,
		Birthday: birthday,
		Breed:    input.Breed,
	}

	if err := s.catRepo.Create(cat); err != nil {
		return nil, fmt.Errorf("failed to create cat: %w", err)
	}
	return cat, nil
}

func (s *CatService) UpdateCat(id uint64, input CatInput) (*models.Cat, error) {
	cat, err := s.catRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCatNotFound
		}
		return nil, fmt.Errorf("failed to find cat: %w", err)
	}

	if input.Name != "" {
		cat.Name = input.Name
	}
	if input.Gender != "" {
		cat.Gender = input.Gender
	}
	if input.Birthday != nil {
		birthday, err := parseBirthday(input.Birthday)
		if err != nil {
			return nil, err
		}
		cat.Birthday = birthday
	}
	if input.Breed != nil {
		cat.Breed = input.Breed
	}

	if err := s.catRepo.Update(cat); err != nil {
		return nil, fmt.Errorf("failed to update cat: %w", err)
	}
	return cat, nil
}

func (s *CatService) DeleteCat(id uint64) error {
	if err := s.catRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCatNotFound
		}
		return fmt.Errorf("failed to delete cat: %w", err)
	}
	return nil
}
