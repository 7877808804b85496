package service

import (
	"context"
	"fmt"

	"github.com/ecopontos/ecopontos-api/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type CategoryService struct {
	repo           CategoryRepository
	uploadsBaseURL string
}

func NewCategoryService(repo CategoryRepository, uploadsBaseURL string) *CategoryService {
	return &CategoryService{
		repo:           repo,
		uploadsBaseURL: uploadsBaseURL,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	result := make([]domain.Category, len(categories))
	for i, category := range categories {
		category.ImageURL = s.uploadsBaseURL + category.Image
		result[i] = category
	}

	return result, nil
}
