package main

import (
	"os"

	"github.com/jsr4564/WepaAPP/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
