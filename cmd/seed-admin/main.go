package main

import (
	"flag"
	"log"
	"time"

	"dawah-report-api/config"
	"dawah-report-api/models"
	"dawah-report-api/utils"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// seed-admin creates or rotates the bootstrap central admin account. Every
// other account is created through the API; this one has to exist first.
func main() {
	email := flag.String("email", "", "central admin email")
	name := flag.String("name", "Central Admin", "display name")
	password := flag.String("password", "", "initial password (will be hashed)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: seed-admin -email admin@example.org -password secret [-name \"Central Admin\"]")
	}
	if !utils.ValidateEmail(*email) {
		log.Fatal("Invalid email address")
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	config.InitDB()

	if err := config.DB.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to migrate users table:", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()

	var existing models.User
	err = config.DB.Where("email = ? AND delete_at IS NULL", *email).First(&existing).Error
	if err == nil {
		existing.Password = string(hashed)
		existing.Role = models.RoleCentralAdmin
		existing.UpdateAt = &now
		if err := config.DB.Save(&existing).Error; err != nil {
			log.Fatal("Failed to update admin:", err)
		}
		log.Printf("Rotated credentials for %s", *email)
		return
	}

	admin := models.User{
		Name:     *name,
		Email:    *email,
		Password: string(hashed),
		Role:     models.RoleCentralAdmin,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}
	log.Printf("Created central admin %s (user_id=%d)", *email, admin.UserID)
}
