package main

import (
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/notification/app"
)

func main() {
	config := config.CreateNewConfig()

	server := app.App{
		Config: config,
	}

	server.Start()
}
