package database

import (
	"fmt"

	"github.com/Gouveia04K/GA-Financas/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Categoria{},
		&models.Transacao{},
		&models.Meta{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
