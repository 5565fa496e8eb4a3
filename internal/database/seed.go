package database

import (
	"encoding/json"
	"fmt"

	"github.com/openimagingdata/radelement-api/data"
	"github.com/openimagingdata/radelement-api/internal/models"
	"gorm.io/gorm"
)

// Seed inserts the known index code systems. Existing rows are left alone,
// keyed on the system abbreviation.
func Seed(db *gorm.DB) error {
	var systems []models.IndexCodeSystem
	if err := json.Unmarshal([]byte(data.IndexCodeSystems), &systems); err != nil {
		return fmt.Errorf("failed to parse index code system seed: %w", err)
	}

	for _, system := range systems {
		row := system
		err := db.Where("abbrev = ?", system.Abbrev).FirstOrCreate(&row).Error
		if err != nil {
			return fmt.Errorf("failed to seed index code system %s: %w", system.Abbrev, err)
		}
	}
	return nil
}
