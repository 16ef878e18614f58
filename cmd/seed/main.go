package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sustainshare/internal/config"
	"sustainshare/internal/db"
	"sustainshare/internal/model"
	"sustainshare/internal/repository"
	"sustainshare/internal/store"
)

// seedUser pairs a user record with its plaintext demo password.
type seedUser struct {
	user     model.User
	password string
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	sqlStore := store.NewSQL(gormDB)
	if err := sqlStore.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(sqlStore)
	donationRepo := repository.NewDonationRepository(sqlStore)

	created, skipped, err := seedUsers(ctx, userRepo, demoUsers())
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Users: %d created, %d already present", created, skipped)

	created, skipped, err = seedDonations(ctx, userRepo, donationRepo, demoDonations())
	if err != nil {
		log.Fatalf("Failed to seed donations: %v", err)
	}
	log.Printf("Donations: %d created, %d already present", created, skipped)

	log.Println("Seed completed successfully!")
}

// demoUsers returns one account per role for local development. Passwords
// are intentionally trivial; never seed a production database with this.
func demoUsers() []seedUser {
	return []seedUser{
		{
			user: model.User{
				ID:       "11111111-1111-1111-1111-111111111111",
				Name:     "Paradise Restaurant",
				Username: "paradise",
				Email:    "donor@sustainshare.org",
				Role:     model.RoleDonor,
			},
			password: "donor123",
		},
		{
			user: model.User{
				ID:       "22222222-2222-2222-2222-222222222222",
				Name:     "Akshaya Patra Foundation",
				Username: "akshayapatra",
				Email:    "charity@sustainshare.org",
				Role:     model.RoleCharity,
			},
			password: "charity123",
		},
		{
			user: model.User{
				ID:       "33333333-3333-3333-3333-333333333333",
				Name:     "Platform Admin",
				Username: "admin",
				Email:    "admin@sustainshare.org",
				Role:     model.RoleAdmin,
			},
			password: "admin123",
		},
	}
}

// demoDonations returns a few AVAILABLE donations around Hyderabad so the
// map and listing views have something to show immediately.
func demoDonations() []model.FoodDonation {
	now := time.Now()
	banjara := [2]float64{17.4065, 78.4772}
	gachibowli := [2]float64{17.4401, 78.3489}
	secunderabad := [2]float64{17.4399, 78.4983}
	return []model.FoodDonation{
		{
			Name:           "Vegetable Biryani",
			Quantity:       "25 kg",
			Category:       "Cooked Food",
			PickupLocation: "Banjara Hills, Hyderabad",
			Coordinates:    &banjara,
			ExpiryTime:     now.Add(6 * time.Hour),
			Description:    "Freshly prepared, packed in food-grade containers",
			DonorID:        "11111111-1111-1111-1111-111111111111",
		},
		{
			Name:           "Wheat Bread Loaves",
			Quantity:       "40 loaves",
			Category:       "Bakery",
			PickupLocation: "Gachibowli, Hyderabad",
			Coordinates:    &gachibowli,
			ExpiryTime:     now.Add(24 * time.Hour),
			Allergens:      "gluten",
			DonorID:        "11111111-1111-1111-1111-111111111111",
		},
		{
			Name:           "Mixed Fruit Crates",
			Quantity:       "12 crates",
			Category:       "Produce",
			PickupLocation: "Secunderabad, Hyderabad",
			Coordinates:    &secunderabad,
			ExpiryTime:     now.Add(48 * time.Hour),
			DonorID:        "11111111-1111-1111-1111-111111111111",
		},
	}
}

// seedUsers inserts demo users, skipping any email already present.
func seedUsers(ctx context.Context, repo repository.UserRepository, seeds []seedUser) (created int, skipped int, err error) {
	for _, s := range seeds {
		if _, findErr := repo.FindByEmail(ctx, s.user.Email); findErr == nil {
			skipped++
			continue
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if hashErr != nil {
			return created, skipped, hashErr
		}

		u := s.user
		u.PasswordHash = string(hash)
		u.Status = model.UserStatusActive
		u.CreatedAt = time.Now()
		if createErr := repo.Create(ctx, &u); createErr != nil {
			return created, skipped, createErr
		}
		created++
	}
	return created, skipped, nil
}

// seedDonations inserts demo donations once; reruns are no-ops keyed on the
// donation name per donor.
func seedDonations(ctx context.Context, users repository.UserRepository, repo repository.DonationRepository, donations []model.FoodDonation) (created int, skipped int, err error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	present := make(map[string]bool, len(existing))
	for _, d := range existing {
		present[d.DonorID+"/"+d.Name] = true
	}

	for _, d := range donations {
		if present[d.DonorID+"/"+d.Name] {
			skipped++
			continue
		}
		if _, findErr := users.FindByID(ctx, d.DonorID); findErr != nil {
			log.Printf("Skipping donation %q: donor %s not found", d.Name, d.DonorID)
			skipped++
			continue
		}

		d.ID = uuid.NewString()
		d.Status = model.DonationStatusAvailable
		d.CreatedAt = time.Now()
		if createErr := repo.Create(ctx, &d); createErr != nil {
			return created, skipped, createErr
		}
		created++
	}
	return created, skipped, nil
}
