package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"dawah-report-api/config"
	"dawah-report-api/models"
	"dawah-report-api/services"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// import-users migrates accounts from the legacy API into the local store.
// Existing accounts (matched by email) get their role and scope refreshed;
// new ones are created with a placeholder password that must be rotated.
func main() {
	baseURL := flag.String("from", "", "base URL of the legacy API")
	timeout := flag.Duration("timeout", 60*time.Second, "overall fetch timeout")
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("usage: import-users -from https://legacy.example.org")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	config.InitDB()
	if err := config.DB.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to migrate users table:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	users, err := services.FetchLegacyUsers(ctx, *baseURL, nil)
	if err != nil {
		log.Fatal("Failed to fetch legacy users:", err)
	}
	log.Printf("Fetched %d users", len(users))

	placeholder, err := bcrypt.GenerateFromPassword([]byte("changeme-"+time.Now().Format("20060102")), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash placeholder password:", err)
	}

	var created, updated, skipped int
	now := time.Now()
	for _, u := range users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		if email == "" || !models.IsKnownRole(u.Role) {
			skipped++
			continue
		}

		var existing models.User
		err := config.DB.Where("email = ? AND delete_at IS NULL", email).First(&existing).Error
		switch {
		case err == nil:
			existing.Name = u.Name
			existing.Role = u.Role
			existing.Division = u.Division
			existing.District = u.District
			existing.Upazila = u.Upazila
			existing.UnionName = u.UnionName
			existing.Markaz = u.Markaz
			existing.Banned = u.Banned
			existing.UpdateAt = &now
			if err := config.DB.Save(&existing).Error; err != nil {
				log.Printf("update %s: %v", email, err)
				continue
			}
			updated++
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := u
			fresh.UserID = 0
			fresh.Email = email
			fresh.Password = string(placeholder)
			fresh.CreateAt = &now
			fresh.UpdateAt = &now
			if err := config.DB.Create(&fresh).Error; err != nil {
				log.Printf("create %s: %v", email, err)
				continue
			}
			created++
		default:
			log.Printf("lookup %s: %v", email, err)
		}
	}

	log.Printf("Import done: %d created, %d updated, %d skipped", created, updated, skipped)
}
