package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/andrewpaige1/flashdeck-api/config"
	"github.com/andrewpaige1/flashdeck-api/seed"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}

	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	config.Flags(flags)
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	results, err := seed.Demo(context.Background(), store.New(db))
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	for _, res := range results {
		if res.Created {
			fmt.Printf("Created %s deck with %d cards\n", res.Deck, res.Cards)
		} else {
			fmt.Printf("%s already exists, skipped\n", res.Deck)
		}
	}
	fmt.Println("Successfully initialized demo data!")
}
