package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Point{},
		&PointCategory{},
	)
}

// SeedCategories inserts the fixed catalog. Existing rows are left untouched,
// so reruns are harmless and the catalog stays append-only.
func SeedCategories(db *gorm.DB) error {
	categories := []Category{
		{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"},
		{ID: 2, Title: "Pilhas e Baterias", Image: "baterias.svg"},
		{ID: 3, Title: "Papéis e Papelão", Image: "papeis-papelao.svg"},
		{ID: 4, Title: "Resíduos Eletrônicos", Image: "eletronicos.svg"},
		{ID: 5, Title: "Resíduos Orgânicos", Image: "organicos.svg"},
		{ID: 6, Title: "Óleo de Cozinha", Image: "oleo.svg"},
	}

	for _, category := range categories {
		result := db.Where(Category{ID: category.ID}).FirstOrCreate(&category)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}
