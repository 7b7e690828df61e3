// @title Concord
// @version 0.1
// @description Multi-server chat backend with realtime channel broadcast.

// @host localhost:8080
// @BasePath /api
// @query.collection.format multi
// @schemes http

package main

import (
	"log"

	"concord/internal/app"
	"concord/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	app.Run(cfg)
}
