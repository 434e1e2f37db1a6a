// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pulseboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAccounts int
	NumPosts    int
	ShouldClean bool
	// AdminRatio is the fraction of seeded accounts marked as admins.
	AdminRatio float64
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d accounts and %d posts...", opts.NumAccounts, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	accounts, err := createAccounts(db, opts)
	if err != nil {
		return fmt.Errorf("failed to create accounts: %w", err)
	}
	log.Printf("%d test accounts created", len(accounts))

	posts, err := createPosts(db, accounts, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	log.Println("Database seeding completed successfully")
	return nil
}

func clearData(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Account{}).Error
}

func createAccounts(db *gorm.DB, opts Options) ([]models.Account, error) {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	adminRatio := opts.AdminRatio
	if adminRatio <= 0 {
		adminRatio = 0.05
	}

	accounts := make([]models.Account, 0, opts.NumAccounts)
	for i := 0; i < opts.NumAccounts; i++ {
		account := models.Account{
			Username: gofakeit.Username(),
			IsAdmin:  r.Float64() < adminRatio,
		}
		// most accounts carry an avatar, some stay without one
		if r.Intn(10) < 8 {
			url := fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID())
			account.ImageURL = &url
		}
		accounts = append(accounts, account)
	}

	if len(accounts) == 0 {
		return accounts, nil
	}
	if err := db.CreateInBatches(&accounts, 100).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func createPosts(db *gorm.DB, accounts []models.Account, numPosts int) ([]models.Post, error) {
	if len(accounts) == 0 || numPosts == 0 {
		return nil, nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := accounts[r.Intn(len(accounts))]
		posts = append(posts, models.Post{
			AccountID: author.ID,
			Title:     gofakeit.Sentence(5),
			Body:      gofakeit.Paragraph(1, 3, 5, "\n"),
			LikeCount: r.Intn(500),
		})
	}

	if err := db.CreateInBatches(&posts, 100).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
