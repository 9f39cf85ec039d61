// Package main AI Tutorial API Server
//
//	@title			AI Tutorial API
//	@version		1.0
//	@description	A REST API demonstrating chat, prompt engineering, structured output, and retrieval augmented generation
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main

import (
	"log"

	"github.com/joho/godotenv"

	_ "ai-tutorial/docs" // This imports the docs package to initialize swagger
	"ai-tutorial/internal/server"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	log.Println("Starting AI Tutorial Server...")
	srv, err := server.New()
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
