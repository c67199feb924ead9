package main

import (
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Gotppsn/TP-chatbot-sub000/internal/model"
	"github.com/Gotppsn/TP-chatbot-sub000/pkg/database"
)

// Seeds the baseline data a fresh portal needs: departments, an admin
// account, the system settings row, and the notification type registry.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	seedDepartments(db)
	seedAdmin(db)
	seedSettings(db)
	seedNotificationTypes(db)

	color.Green("✅ Seeding complete")
}

func seedDepartments(db *gorm.DB) {
	departments := []model.Department{
		{Id: uuid.New(), Name: "IT", Description: "Technical support and infrastructure"},
		{Id: uuid.New(), Name: "HR", Description: "Human resources and onboarding"},
		{Id: uuid.New(), Name: "Finance", Description: "Payroll, expenses and budgets"},
	}

	for _, dept := range departments {
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&dept)
		if res.Error != nil {
			color.Red("Failed to seed department %s: %v", dept.Name, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			color.Cyan("Department created: %s", dept.Name)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123!"
		color.Yellow("SEED_ADMIN_PASSWORD not set, using the default. Change it after first login.")
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		color.Cyan("Admin account already exists: %s", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Failed to hash admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Portal Administrator",
		Role:         "admin",
		Status:       "active",
		Department:   "IT",
	}
	if err := db.Create(&admin).Error; err != nil {
		color.Red("Failed to seed admin account: %v", err)
		return
	}
	color.Cyan("Admin account created: %s", email)
}

func seedSettings(db *gorm.DB) {
	var count int64
	db.Model(&model.SystemSettings{}).Count(&count)
	if count > 0 {
		return
	}

	endpoint := os.Getenv("FLOWISE_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:3000/"
	}

	settings := model.SystemSettings{
		Id:               uuid.New(),
		OrganizationName: "Helpdesk Portal",
		FlowiseEndpoint:  endpoint,
		FlowiseApiKey:    os.Getenv("FLOWISE_API_KEY"),
		DefaultModel:     "gpt-4o-mini",
		Temperature:      0.7,
		MaxTokens:        2000,
	}
	if err := db.Create(&settings).Error; err != nil {
		color.Red("Failed to seed system settings: %v", err)
		return
	}
	color.Cyan("System settings row created (endpoint %s)", endpoint)
}

func seedNotificationTypes(db *gorm.DB) {
	now := time.Now()
	types := []model.NotificationType{
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New Registration",
			Template:    "{email} registered and is waiting for approval in {department}",
			TargetType:  "ADMIN",
			Priority:    "MEDIUM",
		},
		{
			Code:        "FEEDBACK_SUBMITTED",
			DisplayName: "Session Feedback",
			Template:    "A chat session was rated {rating}/5",
			TargetType:  "ADMIN",
			Priority:    "LOW",
		},
		{
			Code:        "SESSION_CLOSED",
			DisplayName: "Session Closed",
			Template:    "Your chat session has ended",
			TargetType:  "SELF",
			Priority:    "LOW",
		},
		{
			Code:        "DEPARTMENT_RENAMED",
			DisplayName: "Department Renamed",
			Template:    "Department {old_name} is now {new_name}",
			TargetType:  "BROADCAST",
			Priority:    "MEDIUM",
		},
		{
			Code:        "CHATBOT_SYNCED",
			DisplayName: "Chatbots Synced",
			Template:    "Chatflow sync finished: {created} created, {updated} updated",
			TargetType:  "ADMIN",
			Priority:    "LOW",
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
		},
	}

	for i := range types {
		types[i].IsActive = true
		types[i].CreatedAt = now
		types[i].UpdatedAt = now

		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&types[i])
		if res.Error != nil {
			color.Red("Failed to seed notification type %s: %v", types[i].Code, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			color.Cyan("Notification type created: %s", types[i].Code)
		}
	}
}
