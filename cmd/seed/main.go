// Command main runs the database seeder for Moment Canvas.
package main

import (
	"flag"
	"log"

	"momentcanvas/internal/config"
	"momentcanvas/internal/database"
	"momentcanvas/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", seed.DefaultOptions.Users, "Number of users to create")
	numDiaries := flag.Int("diaries", seed.DefaultOptions.DiariesPerUser, "Diaries per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plain passwords (faster)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d diaries each, clean=%v\n", *numUsers, *numDiaries, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	opts := seed.DefaultOptions
	opts.Users = *numUsers
	opts.DiariesPerUser = *numDiaries
	opts.SkipBcrypt = *skipBcrypt

	if err := s.Run(opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with test data.")
	log.Printf("Every generated account uses the password: %s", seed.SeedPassword)
}
