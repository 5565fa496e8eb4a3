package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/openimagingdata/radelement-api/internal/database"
	"github.com/openimagingdata/radelement-api/internal/models"
	"github.com/openimagingdata/radelement-api/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func floatFlex(v float64) *types.FlexFloat64 {
	f := types.FlexFloat64(v)
	return &f
}

// setupTestDB creates an in-memory SQLite database for testing, migrated and
// seeded with the known index code systems.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// One in-memory SQLite database per connection, so keep one connection.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func createTestSet(t *testing.T, db *gorm.DB, name string) models.ElementSet {
	set := models.ElementSet{Name: name, Status: "Proposed"}
	if err := db.Create(&set).Error; err != nil {
		t.Fatalf("Failed to create test set: %v", err)
	}
	return set
}

func createTestElement(t *testing.T, db *gorm.DB, name, valueType string) models.Element {
	element := models.Element{
		Name:           name,
		ValueType:      valueType,
		MinCardinality: 1,
		MaxCardinality: 1,
		Status:         "Proposed",
	}
	if err := db.Create(&element).Error; err != nil {
		t.Fatalf("Failed to create test element: %v", err)
	}
	return element
}

func createTestPerson(t *testing.T, db *gorm.DB, name string) models.Person {
	person := models.Person{Name: name}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("Failed to create test person: %v", err)
	}
	return person
}

func createTestOrganization(t *testing.T, db *gorm.DB, name string) models.Organization {
	organization := models.Organization{Name: name}
	if err := db.Create(&organization).Error; err != nil {
		t.Fatalf("Failed to create test organization: %v", err)
	}
	return organization
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
