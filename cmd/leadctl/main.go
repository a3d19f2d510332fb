package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/SebasPM15/landing-personal/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
