package database

import (
	"fmt"
	"log"

	"pqapi/config"
	"pqapi/models"
	"pqapi/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

var DefaultAdminPassword = "admin"

// InitDB initializes the database connection, migrates the models and
// populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Migrate applies the schema for all models to the given database
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Language{},
		&models.Set{},
		&models.Bonus{},
		&models.Challenge{},
		&models.Solution{},
	)
}

// Populate seeds the default admin account, the built-in bonuses and the
// language list on a fresh database
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser == 0 {
		password := DefaultAdminPassword
		if config.DefaultPassword != "" {
			password = config.DefaultPassword
		}

		hashed, err := utils.HashPassword(password)
		if err != nil {
			panic(err)
		}

		admin := models.User{
			Username: "admin",
			Email:    "admin@admin.com",
			Password: hashed,
			IsStaff:  true,
		}
		DB.Create(&admin)
		log.Println("Default user admin created")
	}

	var countBonus int64
	DB.Model(&models.Bonus{}).Count(&countBonus)
	if countBonus == 0 {
		bonuses := []models.Bonus{
			{Kind: models.BonusFastSolve, Title: "Speed demon", Description: "Solved the timed set within the fast-solve window.", Icon: "icon-bolt", Points: 5},
			{Kind: models.BonusEarlyBird, Title: "Early bird", Description: "Solved the timed set shortly after the challenge started.", Icon: "icon-sun", Points: 5},
			{Kind: models.BonusFirstToFinish, Title: "First post", Description: "First to complete the final set.", Icon: "icon-flag", Points: 10},
		}
		for i := range bonuses {
			DB.Create(&bonuses[i])
		}
		log.Println("Default bonuses created")
	}

	var countLanguage int64
	DB.Model(&models.Language{}).Count(&countLanguage)
	if countLanguage == 0 {
		languages := []models.Language{
			{Name: "C", Extension: ".c"},
			{Name: "C++", Extension: ".cpp"},
			{Name: "Go", Extension: ".go"},
			{Name: "Java", Extension: ".java"},
			{Name: "Python", Extension: ".py"},
			{Name: "Ruby", Extension: ".rb"},
		}
		for i := range languages {
			DB.Create(&languages[i])
		}
		log.Println("Default languages created")
	}
}
