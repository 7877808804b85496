package dao

import (
	"context"

	"gorm.io/gorm"
)

type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"not null"`
	Image string `gorm:"not null"` // icon filename under the uploads dir
}

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{
		db: db,
	}
}

func (d *CategoryDAO) List(ctx context.Context) ([]Category, error) {
	var categories []Category

	result := d.db.WithContext(ctx).Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}
