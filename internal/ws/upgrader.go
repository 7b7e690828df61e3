package ws

import (
	"net/http"
	"os"
	"slices"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Non-browser clients send no Origin header.
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:8080",
		}

		if os.Getenv("ENVIRONMENT") == "development" {
			return true
		}

		return slices.Contains(allowedOrigins, origin)
	},
}
