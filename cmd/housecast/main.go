package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/calderaproj/housecast/cmd/housecast/commands"
)

func main() {
	// Optional .env for HOUSECAST_* overrides; absence is fine.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
