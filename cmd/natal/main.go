package main

import (
	"os"

	"natal-chart-service/cmd/natal/commands"
)

// main is the entry point for the natal CLI: go run ./cmd/natal [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
