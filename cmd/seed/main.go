package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/otpware/dispatch/internal/config"
	"github.com/otpware/dispatch/internal/db/gormdb"
	domain "github.com/otpware/dispatch/internal/domain/contact"
	contactRepo "github.com/otpware/dispatch/internal/repository/gorm/contact"
	dispatchRepo "github.com/otpware/dispatch/internal/repository/gorm/dispatch"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()

	// Load application configuration (DB, Redis, etc.) from env/.env.
	cfg := config.New()

	// Open a Postgres connection through our GORM adapter.
	gormAdapter, err := gormdb.New(cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("[Seed] Failed to connect to database: %v", err)
	}

	log.Printf("[Seed] Connected to database %q", cfg.DB.Name)

	// 1) AutoMigrate: make sure the contacts and dispatch_records tables exist.
	// We go through the adapter to access the underlying *gorm.DB.
	rawDB := gormAdapter.Conn().(*gorm.DB)

	if err := rawDB.AutoMigrate(&contactRepo.ContactModel{}, &dispatchRepo.RecordModel{}); err != nil {
		log.Fatalf("[Seed] AutoMigrate failed: %v", err)
	}
	log.Println("[Seed] Tables are up to date (AutoMigrate completed).")

	// 2) Primitive seeding: insert a browsable contact list.
	repo := contactRepo.NewRepository(gormAdapter)

	seeds := []struct{ first, last string }{
		{"Asha", "Rao"},
		{"Dev", "Sharma"},
		{"Meera", "Iyer"},
		{"Rahul", "Nair"},
		{"Sana", "Khan"},
	}

	log.Printf("[Seed] Inserting %d contacts...", len(seeds))

	for i, s := range seeds {
		// Use the domain constructor so we respect domain rules.
		c, err := domain.New(s.first, s.last, randomPhone())
		if err != nil {
			log.Fatalf("[Seed] Failed to build contact #%d: %v", i+1, err)
		}

		if err := repo.Save(ctx, c); err != nil {
			log.Fatalf("[Seed] Failed to save contact #%d: %v", i+1, err)
		}

		log.Printf("[Seed] Created contact #%d: id=%s name=%q number=%s",
			i+1, c.ID.String(), c.FullName(), c.PhoneNumber)
	}

	log.Printf("[Seed] Done. Inserted %d contacts into table 'contacts'.", len(seeds))
}

// randomPhone generates a simple fake phone number the way an operator
// would type it: a leading zero plus ten digits.
// Example output: 09876543210
func randomPhone() string {
	n := rand.Intn(900000000) + 100000000 // 9 digits
	return fmt.Sprintf("09%d", n)
}
