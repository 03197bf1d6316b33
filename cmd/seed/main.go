package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/yusufkaramustafa/Timesheet-App/config"
	"github.com/yusufkaramustafa/Timesheet-App/database"
	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
	"github.com/yusufkaramustafa/Timesheet-App/validation"
)

var sampleDescriptions = []string{
	"Sprint planning",
	"Design review",
	"Bug fixing",
	"Customer meeting",
	"Feature development",
	"Code review",
	"Documentation",
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	fmt.Println("Starting timesheet seed...")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	timesheetRepo := repository.NewTimesheetRepository(db)

	employees := []string{"ayse", "mehmet", "zeynep"}
	for _, username := range employees {
		user, err := userRepo.GetByUsername(ctx, username)
		if err != nil {
			log.Fatalf("Failed to look up %s: %v", username, err)
		}
		if user == nil {
			hashedBytes, err := bcrypt.GenerateFromPassword([]byte(username+"123"), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash password: %v", err)
			}
			user = &models.User{
				Username:     username,
				PasswordHash: string(hashedBytes),
				Role:         models.RoleEmployee,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				log.Fatalf("Failed to create %s: %v", username, err)
			}
			fmt.Printf("Created employee %s\n", username)
		}

		// Two weeks of working days, one entry per day
		created := 0
		for day := 0; day < 14; day++ {
			date := time.Now().UTC().AddDate(0, 0, -day)
			if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
				continue
			}
			description := sampleDescriptions[rand.Intn(len(sampleDescriptions))]
			validated, err := validation.ValidateTimesheet(validation.TimesheetInput{
				Date:        date.Format(models.DateLayout),
				Project:     models.ProjectOptions[rand.Intn(len(models.ProjectOptions))],
				Hours:       float64(rand.Intn(8) + 1),
				Description: &description,
			})
			if err != nil {
				log.Fatalf("Unexpected validation failure: %v", err)
			}
			if _, err := timesheetRepo.Create(ctx, user.ID, validated); err != nil {
				log.Fatalf("Failed to create timesheet: %v", err)
			}
			created++
		}
		fmt.Printf("Seeded %d entries for %s\n", created, username)
	}

	fmt.Println("Seed complete")
}
