package main

import (
	"os"

	"github.com/wonny/festa/backend/cmd/festa/commands"
)

// main is the entry point for the Festa CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/festa [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
