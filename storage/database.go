package storage

import (
	"booking-clone-server/models"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

// PerformMigrations migrates every model; reference tables first so that
// foreign keys resolve.
func PerformMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.Geoobject{},
		&models.User{},
		&models.Property{},
		&models.ApartmentType{},
		&models.Apartment{},
		&models.RoomType{},
		&models.Room{},
		&models.BedType{},
		&models.Bed{},
		&models.PricePeriod{},
		&models.Booking{},
		&models.FacilityCategory{},
		&models.Facility{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	PerformMigrations(db)
	return db
}
