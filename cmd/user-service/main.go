package main

import (
	"log"

	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/user/app"

	postgresDriver "github.com/vominhduc11/NexHub-sub001/internal/infrastructure/database/postgres"
)

func main() {
	config := config.CreateNewConfig()
	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	server := app.App{
		DB:     db,
		Config: config,
	}

	server.Start()
}
