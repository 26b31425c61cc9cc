package main

import (
	"os"

	"triad/cmd/triad/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
