package main

import (
	"os"

	"analyzer-backend/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
