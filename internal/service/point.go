package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ecopontos/ecopontos-api/internal/domain"
	"github.com/ecopontos/ecopontos-api/internal/repository"
)

var (
	ErrPointNotFound       = repository.ErrPointNotFound
	ErrCategoryNotFound    = repository.ErrCategoryNotFound
	ErrConstraintViolation = repository.ErrConstraintViolation

	ErrInvalidCategoryIDs = errors.New("categories must be a comma-separated list of numeric ids")
)

type PointRepository interface {
	CreateWithCategories(ctx context.Context, point domain.Point, categoryIDs []uint) (domain.Point, error)
	GetByID(ctx context.Context, id uint) (domain.Point, error)
	GetCategoryTitles(ctx context.Context, pointID uint) ([]string, error)
	Search(ctx context.Context, city, uf string, categoryIDs []uint) ([]domain.Point, error)
}

type PointService struct {
	repo           PointRepository
	uploadsBaseURL string
}

func NewPointService(repo PointRepository, uploadsBaseURL string) *PointService {
	return &PointService{
		repo:           repo,
		uploadsBaseURL: uploadsBaseURL,
	}
}

// Register persists the point and its category links as one atomic unit.
// The raw category-id list is parsed before anything is written.
func (s *PointService) Register(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error) {
	categoryIDs, err := parseCategoryIDs(rawCategoryIDs)
	if err != nil {
		return domain.Point{}, err
	}
	if len(categoryIDs) == 0 {
		return domain.Point{}, ErrInvalidCategoryIDs
	}

	created, err := s.repo.CreateWithCategories(ctx, point, categoryIDs)
	if err != nil {
		return domain.Point{}, fmt.Errorf("s.repo.CreateWithCategories -> %w", err)
	}

	return s.withImageURL(created), nil
}

// Search returns the points in city/uf accepting any of the requested
// categories. An empty rawCategoryIDs leaves the category filter off.
func (s *PointService) Search(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
	categoryIDs, err := parseCategoryIDs(rawCategoryIDs)
	if err != nil {
		return nil, err
	}

	points, err := s.repo.Search(ctx, city, uf, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Search -> %w", err)
	}

	result := make([]domain.Point, len(points))
	for i, point := range points {
		result[i] = s.withImageURL(point)
	}

	return result, nil
}

func (s *PointService) GetDetail(ctx context.Context, id uint) (domain.PointDetail, error) {
	point, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.PointDetail{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	titles, err := s.repo.GetCategoryTitles(ctx, id)
	if err != nil {
		return domain.PointDetail{}, fmt.Errorf("s.repo.GetCategoryTitles -> %w", err)
	}

	return domain.PointDetail{
		Point:      s.withImageURL(point),
		Categories: titles,
	}, nil
}

func (s *PointService) withImageURL(point domain.Point) domain.Point {
	point.ImageURL = s.uploadsBaseURL + point.Image
	return point
}

// parseCategoryIDs turns "1, 2,3" into {1,2,3}. Duplicates collapse, a blank
// input yields an empty set, and any non-numeric token is a validation error.
func parseCategoryIDs(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	seen := make(map[uint]bool)
	ids := make([]uint, 0)
	for _, token := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 32)
		if err != nil {
			return nil, ErrInvalidCategoryIDs
		}

		if !seen[uint(id)] {
			seen[uint(id)] = true
			ids = append(ids, uint(id))
		}
	}

	return ids, nil
}
