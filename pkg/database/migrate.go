package database

import (
	"fmt"

	"github.com/ga-dictionary/api-server-go/models"
	"gorm.io/gorm"
)

// Migrate runs the schema migrations for all dictionary models.
//
// The open-flag uniqueness invariant (at most one OPEN flag per word and
// user) is enforced with a partial unique index, which GORM column tags
// cannot express. The same statement is valid on PostgreSQL and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Word{},
		&models.Contribution{},
		&models.Flag{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_flags_one_open_per_word_user ` +
			`ON flags (word_id, user_id) WHERE status = 'OPEN'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create open-flag unique index: %w", err)
	}

	return nil
}
