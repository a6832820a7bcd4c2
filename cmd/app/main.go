package main

import (
	"os"

	"github.com/adityanb2025/Disaster-relief-app/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
