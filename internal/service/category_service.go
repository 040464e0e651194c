package service

import (
	"fmt"
	"strings"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/pkg/slug"
)

var errCategoryExists = apperr.Validation("Category already exists")

type CategoryService interface {
	GetAllCategories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	CreateCategory(req *CategoryRequest) (*model.Category, error)
	UpdateCategory(id uint, req *CategoryRequest) (*model.Category, error)
	DeleteCategory(id uint) error
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCategoryService(cRepo repository.CategoryRepository, pRepo repository.ProductRepository) CategoryService {
	return &categoryService{categoryRepo: cRepo, productRepo: pRepo}
}

func (s *categoryService) GetAllCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch categories", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, apperr.Internal("Failed to fetch category", err)
	}
	return category, nil
}

func (s *categoryService) CreateCategory(req *CategoryRequest) (*model.Category, error) {
	name, categorySlug, err := s.prepare(req, 0)
	if err != nil {
		return nil, err
	}

	category := &model.Category{Name: name, Slug: categorySlug, Description: req.Description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, apperr.Internal("Failed to create category", err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, req *CategoryRequest) (*model.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	name, categorySlug, err := s.prepare(req, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Slug = categorySlug
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, apperr.Internal("Failed to update category", err)
	}
	return s.GetCategoryByID(id)
}

// DeleteCategory refuses while any product still references the category.
func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategoryByID(id); err != nil {
		return err
	}

	n, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return apperr.Internal("Failed to delete category", err)
	}
	if n > 0 {
		return apperr.Validation(fmt.Sprintf("Cannot delete category with %d associated products. Please reassign or delete them first.", n))
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("Category not found")
		}
		return apperr.Internal("Failed to delete category", err)
	}
	return nil
}

// prepare validates req and derives the slug, rejecting clashes with other categories.
func (s *categoryService) prepare(req *CategoryRequest, excludeID uint) (string, string, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return "", "", err
	}

	categorySlug := slug.Make(req.Name)
	if categorySlug == "" {
		return "", "", apperr.Validation("Category name must contain letters or digits")
	}

	exists, err := s.categoryRepo.ExistsByNameOrSlug(req.Name, categorySlug, excludeID)
	if err != nil {
		return "", "", apperr.Internal("Failed to check category", err)
	}
	if exists {
		return "", "", errCategoryExists
	}
	return req.Name, categorySlug, nil
}
