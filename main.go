package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/bottomline-assist/talent-matcher/cmd"
)

func main() {
	// Values from a .env file never override real environment variables.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
