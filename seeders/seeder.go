package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedRegistry fills the template/field registry the admin screens start
// from. Safe to re-run: existing rows are left alone.
func SeedRegistry(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding registry...")

	if err := seedFieldDefinitions(ctx, db); err != nil {
		log.Fatalf("field definitions seeding failed: %v", err)
	}
	if err := seedTemplates(ctx, db); err != nil {
		log.Fatalf("templates seeding failed: %v", err)
	}
	log.Println("registry seeding done")
}

// SeedDemoData creates the demo factory login.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding demo data...")

	if err := seedDemoFactory(ctx, db); err != nil {
		log.Fatalf("demo factory seeding failed: %v", err)
	}
	log.Println("demo data seeding done")
}
