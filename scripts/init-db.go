package main

import (
	"fmt"
	"log"

	"report_manager/internal/config"
	"report_manager/internal/database"
	"report_manager/internal/migrations"
	"report_manager/internal/models"
	"report_manager/internal/repository"
	"report_manager/internal/services"
)

// Development reset: drops everything, recreates the schema and seeds a
// small demo team with projects and reports.
func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.DailyReport{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	member := &models.User{
		Username:    "tanaka",
		DisplayName: "田中",
		Email:       "tanaka@example.com",
		Role:        string(models.RoleUser),
		IsActive:    true,
	}
	if err := userService.CreateUser(member, "password123"); err != nil {
		log.Fatal("Failed to create demo user:", err)
	}

	admin, err := userRepo.GetByUsername("admin")
	if err != nil {
		log.Fatal("Failed to load admin user:", err)
	}

	project := &models.Project{
		Name:        "社内ポータル",
		Description: "社内ポータルサイトのリニューアル",
		OwnerID:     admin.ID,
	}
	if err := db.Create(project).Error; err != nil {
		log.Fatal("Failed to create demo project:", err)
	}

	task := &models.Task{
		ProjectID:  project.ID,
		Title:      "トップページの実装",
		AssignedTo: member.ID,
		CreatedBy:  admin.ID,
	}
	if err := db.Create(task).Error; err != nil {
		log.Fatal("Failed to create demo task:", err)
	}

	report := &models.DailyReport{
		UserID:      member.ID,
		ReportDate:  "2024-05-01",
		ReportIndex: 0,
		Completed:   []string{"トップページのレイアウト作成"},
		Tomorrow:    []string{"レスポンシブ対応"},
		Project:     project.Name,
		ProjectID:   &project.ID,
		TaskIDs:     []int64{int64(task.ID)},
		Status:      string(models.ReportCompleted),
	}
	if err := db.Create(report).Error; err != nil {
		log.Fatal("Failed to create demo report:", err)
	}

	fmt.Println("Database initialized with demo data.")
}
