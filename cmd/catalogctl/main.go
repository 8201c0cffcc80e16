// Command catalogctl manages the workflow catalog from a terminal.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
