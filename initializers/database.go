package initializers

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/basit/filestash-backend/models"
)

// ConnectToDatabase opens the metadata database and migrates the
// schema. The handle is returned, not stashed in a package variable,
// so every component gets its client injected.
func ConnectToDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.File{},
	); err != nil {
		log.Fatalf("❌ Failed to migrate database schema: %v", err)
	}
	log.Println("✅ Database connected and migrated successfully")
	return db
}
