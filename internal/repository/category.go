package repository

import (
	"context"
	"fmt"

	"github.com/ecopontos/ecopontos-api/internal/domain"
	"github.com/ecopontos/ecopontos-api/internal/repository/dao"
)

type CategoryDAO interface {
	List(ctx context.Context) ([]dao.Category, error)
}

type CategoryRepository struct {
	dao CategoryDAO
}

func NewCategoryRepository(dao CategoryDAO) *CategoryRepository {
	return &CategoryRepository{
		dao: dao,
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daosToDomain(categories), nil
}

func (r *CategoryRepository) daosToDomain(categories []dao.Category) []domain.Category {
	result := make([]domain.Category, len(categories))
	for i, category := range categories {
		result[i] = domain.Category{
			ID:    category.ID,
			Title: category.Title,
			Image: category.Image,
		}
	}

	return result
}
