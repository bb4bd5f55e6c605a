package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/arcade-backend/cmd"
)

// main - is the entry point of the application. It loads .env and hands over to the cli.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	// env variables may be set directly
	_ = godotenv.Load()

	cmd.Execute()
}
