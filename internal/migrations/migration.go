package migrations

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"report_manager/internal/models"
	"report_manager/internal/repository"
	"report_manager/internal/services"
)

// RunMigrations migrates the schema and seeds the default admin account
// the first time the service starts against an empty database.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.DailyReport{},
		&models.ActivityLog{},
	)
	if err != nil {
		return err
	}

	return seedDefaultAdmin(db)
}

func seedDefaultAdmin(db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	_, err := userRepo.GetByUsername("admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Creating default admin user...")
	admin := &models.User{
		Username:    "admin",
		DisplayName: "管理者",
		Email:       "admin@example.com",
		Role:        string(models.RoleAdmin),
		IsActive:    true,
	}
	return userService.CreateUser(admin, "admin123")
}
