package main

import (
	"log"
	"os"

	"github.com/responder/core/cmd/api/commands"
)

// @title Responder API
// @version 1.0
// @description Questions and answers kept in a single JSON file

// @host localhost:3000
// @BasePath /

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
