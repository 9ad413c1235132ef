package main

import (
	"fmt"
	"log"
	"os"

	"rental-marketplace-server/routes"
	"rental-marketplace-server/storage"

	"github.com/joho/godotenv"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := routes.BuildApp()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
