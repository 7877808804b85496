package repository

import (
	"context"
	"fmt"

	"github.com/ecopontos/ecopontos-api/internal/domain"
	"github.com/ecopontos/ecopontos-api/internal/repository/dao"
)

var (
	ErrPointNotFound       = dao.ErrPointNotFound
	ErrCategoryNotFound    = dao.ErrCategoryNotFound
	ErrConstraintViolation = dao.ErrConstraintViolation
)

type PointDAO interface {
	InsertWithCategories(ctx context.Context, point dao.Point, categoryIDs []uint) (dao.Point, error)
	FindByID(ctx context.Context, id uint) (dao.Point, error)
	FindCategoryTitles(ctx context.Context, pointID uint) ([]string, error)
	Search(ctx context.Context, city, uf string, categoryIDs []uint) ([]dao.Point, error)
}

type PointRepository struct {
	dao PointDAO
}

func NewPointRepository(dao PointDAO) *PointRepository {
	return &PointRepository{
		dao: dao,
	}
}

func (r *PointRepository) domainToDao(p domain.Point) dao.Point {
	return dao.Point{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *PointRepository) daoToDomain(p dao.Point) domain.Point {
	return domain.Point{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *PointRepository) CreateWithCategories(ctx context.Context, point domain.Point, categoryIDs []uint) (domain.Point, error) {
	created, err := r.dao.InsertWithCategories(ctx, r.domainToDao(point), categoryIDs)
	if err != nil {
		return domain.Point{}, fmt.Errorf("r.dao.InsertWithCategories -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PointRepository) GetByID(ctx context.Context, id uint) (domain.Point, error) {
	point, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Point{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(point), nil
}

func (r *PointRepository) GetCategoryTitles(ctx context.Context, pointID uint) ([]string, error) {
	titles, err := r.dao.FindCategoryTitles(ctx, pointID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCategoryTitles -> %w", err)
	}

	return titles, nil
}

func (r *PointRepository) Search(ctx context.Context, city, uf string, categoryIDs []uint) ([]domain.Point, error) {
	points, err := r.dao.Search(ctx, city, uf, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Search -> %w", err)
	}

	result := make([]domain.Point, len(points))
	for i, point := range points {
		result[i] = r.daoToDomain(point)
	}

	return result, nil
}
