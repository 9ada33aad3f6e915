package seeders

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedDemoFactory creates one login so a fresh install is usable immediately.
// Name and password come from DEMO_FACTORY_NAME / DEMO_FACTORY_PASSWORD with
// obvious defaults.
func seedDemoFactory(ctx context.Context, db *pgxpool.Pool) error {
	name := os.Getenv("DEMO_FACTORY_NAME")
	if name == "" {
		name = "demo"
	}
	password := os.Getenv("DEMO_FACTORY_PASSWORD")
	if password == "" {
		password = "demo1234"
	}

	log.Printf("  - seeding demo factory %q...", name)

	query := `INSERT INTO factories (name, password) VALUES ($1, $2)
			  ON CONFLICT (name) DO NOTHING;`
	_, err := db.Exec(ctx, query, name, password)
	return err
}
