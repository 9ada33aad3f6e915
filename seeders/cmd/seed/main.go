package main

import (
	"context"
	"flag"
	"log"

	"equipment-system/pkg/config"
	"equipment-system/pkg/database/postgresql"
	"equipment-system/seeders"
)

func main() {
	runRegistry := flag.Bool("registry", false, "seed field definitions and equipment templates")
	runDemo := flag.Bool("demo", false, "seed the demo factory login")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runRegistry && !*runDemo && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runRegistry {
		seeders.SeedRegistry(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemoData(dbPool)
	}

	log.Println("seeding complete")
}
