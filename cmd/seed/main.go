package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lostfound/internal/config"
	"lostfound/internal/db"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	Name  string
	Email string
	City  string
}

type seedItem struct {
	OwnerEmail  string
	Name        string
	Category    string
	Description string
	Location    string
	Color       string
	ContactInfo string
	Reward      string
	DropOff     string
	Status      string
	Emergency   bool
}

var seedUsers = []seedUser{
	{Name: "Alice Morgan", Email: "alice@example.com", City: "Springfield"},
	{Name: "Ben Carter", Email: "ben@example.com", City: "Riverside"},
	{Name: "Chloe Nguyen", Email: "chloe@example.com", City: "Fairview"},
}

var seedItems = []seedItem{
	{
		OwnerEmail:  "alice@example.com",
		Name:        "Black Leather Wallet",
		Category:    "Wallet/Purse",
		Description: "Black leather wallet with a red stitch on the side",
		Location:    "Main St bus stop",
		Color:       "Black",
		ContactInfo: "alice@example.com",
		Reward:      "$20",
		Status:      model.StatusLost,
	},
	{
		OwnerEmail:  "alice@example.com",
		Name:        "Silver Necklace",
		Category:    "Jewelry",
		Description: "Thin silver chain with a heart pendant",
		Location:    "Central Park, near the fountain",
		Color:       "Silver",
		ContactInfo: "alice@example.com",
		Status:      model.StatusLost,
		Emergency:   true,
	},
	{
		OwnerEmail:  "ben@example.com",
		Name:        "iPhone 13",
		Category:    "Electronics",
		Description: "Blue iPhone 13 with a cracked screen protector",
		Location:    "Library reading room",
		Color:       "Blue",
		ContactInfo: "ben@example.com",
		DropOff:     "Library front desk",
		Status:      model.StatusFound,
	},
	{
		OwnerEmail:  "chloe@example.com",
		Name:        "House Keys",
		Category:    "Keys",
		Description: "Three keys on a ring with a green carabiner",
		Location:    "Riverside trail",
		Color:       "Green",
		ContactInfo: "chloe@example.com",
		DropOff:     "Police station",
		Status:      model.StatusFound,
	},
	{
		OwnerEmail:  "chloe@example.com",
		Name:        "Passport",
		Category:    "Passport",
		Description: "Passport in a brown travel cover",
		Location:    "Airport shuttle stop",
		ContactInfo: "chloe@example.com",
		DropOff:     "Airport lost and found office",
		Status:      model.StatusFound,
		Emergency:   true,
	},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}, &model.Notification{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	ctx := context.Background()

	users, err := ensureUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	created, skipped, err := ensureItems(ctx, itemRepo, users)
	if err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users available: %d", len(users))
	log.Printf("  - New items created: %d", created)
	log.Printf("  - Existing items skipped: %d", skipped)
	log.Printf("All seed users log in with password %q", seedPassword)
}

// ensureUsers creates seed users that do not exist yet, keyed by email.
func ensureUsers(ctx context.Context, repo repository.UserRepository) (map[string]*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		return nil, err
	}

	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			users[su.Email] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			City:         su.City,
			Level:        model.LevelBronze,
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, err
		}
		log.Printf("Created user %s", su.Email)
		users[su.Email] = user
	}
	return users, nil
}

// ensureItems creates seed items whose name does not already exist for the
// owner, so reruns do not duplicate reports.
func ensureItems(ctx context.Context, repo repository.ItemRepository, users map[string]*model.User) (created, skipped int, err error) {
	for _, si := range seedItems {
		owner, ok := users[si.OwnerEmail]
		if !ok {
			log.Printf("Skipping item %q: unknown owner %s", si.Name, si.OwnerEmail)
			skipped++
			continue
		}

		existing, err := repo.ListByUser(ctx, owner.ID)
		if err != nil {
			return created, skipped, err
		}
		if hasItemNamed(existing, si.Name) {
			skipped++
			continue
		}

		reported := time.Now().AddDate(0, 0, -created) // spread report dates
		item := &model.Item{
			UserID:          owner.ID,
			Name:            si.Name,
			Category:        si.Category,
			Description:     si.Description,
			DateLostOrFound: &reported,
			Location:        si.Location,
			Color:           si.Color,
			ContactInfo:     si.ContactInfo,
			Reward:          si.Reward,
			DropOffLocation: si.DropOff,
			IsEmergency:     si.Emergency,
			Status:          si.Status,
		}
		if err := repo.Create(ctx, item); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}

func hasItemNamed(items []model.Item, name string) bool {
	for _, item := range items {
		if item.Name == name {
			return true
		}
	}
	return false
}
