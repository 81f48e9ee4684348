package main

import (
	"os"

	"github.com/hilyafadhilah/tubes-basdat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
