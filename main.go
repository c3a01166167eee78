package main

import (
	"os"

	"github.com/pas-services/pas-profile/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
