package main

import (
	"log"
	"roulette_backend/internal/app"

	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatalf("app stopped: %v", err)
	}
}
