// cmd/scholar/main.go
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"scholar/internal/cli"
	"scholar/internal/config"
)

func main() {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := cli.Execute(cfg); err != nil {
		os.Exit(1)
	}
}
