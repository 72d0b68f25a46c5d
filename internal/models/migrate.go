package models

import "gorm.io/gorm"

// Migrate creates the lookup and fact tables plus their indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ViolationCode{}, &Violation{})
}
