package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPointNotFound       = errors.New("point not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

type Point struct {
	ID uint `gorm:"primaryKey"`

	Name      string  `gorm:"not null"`
	Email     string  `gorm:"not null"`
	Whatsapp  string  `gorm:"not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	City      string  `gorm:"not null"`
	UF        string  `gorm:"not null"`
	Image     string  `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// PointCategory links a point to one category it accepts.
type PointCategory struct {
	ID         uint     `gorm:"primaryKey"`
	PointID    uint     `gorm:"not null;index"`
	Point      Point    `gorm:"foreignKey:PointID"`
	CategoryID uint     `gorm:"not null"`
	Category   Category `gorm:"foreignKey:CategoryID"`
}

type PointDAO struct {
	db *gorm.DB

	// matchAllWhenUnfiltered controls what Search does with an empty
	// category filter: match every point in city/uf, or match nothing.
	matchAllWhenUnfiltered bool
}

func NewPointDAO(db *gorm.DB, matchAllWhenUnfiltered bool) *PointDAO {
	return &PointDAO{
		db:                     db,
		matchAllWhenUnfiltered: matchAllWhenUnfiltered,
	}
}

// InsertWithCategories creates the point row and one link row per category id
// inside a single transaction. Either all rows land or none do.
func (d *PointDAO) InsertWithCategories(ctx context.Context, point Point, categoryIDs []uint) (Point, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&point); result.Error != nil {
			return result.Error
		}

		links := make([]PointCategory, len(categoryIDs))
		for i, categoryID := range categoryIDs {
			links[i] = PointCategory{
				PointID:    point.ID,
				CategoryID: categoryID,
			}
		}

		if result := tx.Create(&links); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch {
			case pgErr.Code == pgerrcode.ForeignKeyViolation &&
				strings.Contains(pgErr.ConstraintName, "category"):
				return Point{}, ErrCategoryNotFound
			case pgErr.Code == pgerrcode.ForeignKeyViolation,
				pgErr.Code == pgerrcode.NotNullViolation:
				return Point{}, ErrConstraintViolation
			}
		}

		return Point{}, err
	}

	return point, nil
}

func (d *PointDAO) FindByID(ctx context.Context, id uint) (Point, error) {
	var point Point

	result := d.db.WithContext(ctx).First(&point, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Point{}, ErrPointNotFound
		}

		return Point{}, result.Error
	}

	return point, nil
}

// FindCategoryTitles returns the titles of the categories the point accepts.
// A point without links yields an empty slice, not an error.
func (d *PointDAO) FindCategoryTitles(ctx context.Context, pointID uint) ([]string, error) {
	titles := make([]string, 0)

	result := d.db.WithContext(ctx).
		Model(&Category{}).
		Joins("JOIN point_categories ON point_categories.category_id = categories.id").
		Where("point_categories.point_id = ?", pointID).
		Pluck("categories.title", &titles)
	if result.Error != nil {
		return nil, result.Error
	}

	return titles, nil
}

// Search returns the points in city/uf accepting at least one of the given
// categories, each point at most once regardless of how many categories match.
func (d *PointDAO) Search(ctx context.Context, city, uf string, categoryIDs []uint) ([]Point, error) {
	points := make([]Point, 0)

	if len(categoryIDs) == 0 && !d.matchAllWhenUnfiltered {
		return points, nil
	}

	query := d.db.WithContext(ctx).
		Model(&Point{}).
		Where("points.city = ? AND points.uf = ?", city, uf)

	if len(categoryIDs) > 0 {
		query = query.
			Joins("JOIN point_categories ON point_categories.point_id = points.id").
			Where("point_categories.category_id IN ?", categoryIDs).
			Distinct("points.*")
	}

	result := query.Find(&points)
	if result.Error != nil {
		return nil, result.Error
	}

	return points, nil
}
