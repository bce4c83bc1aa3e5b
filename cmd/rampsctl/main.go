package main

import (
	"os"

	"github.com/goodnatureofminers/fiatramps-backend/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
