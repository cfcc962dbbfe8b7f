package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the API needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Post{},
		&Comment{},
		&Like{},
	)
}
