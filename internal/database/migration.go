package database

import (
	"fmt"

	"github.com/bhushanhacker007/solar-burji-app/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the three ledger tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Sale{},
		&models.Borrowing{},
		&models.SolarDaily{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
