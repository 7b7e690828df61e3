package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"concord/internal/handler"

	"github.com/gorilla/handlers"
)

func newTestServer() *Server {
	return NewServer(
		&handler.UserHandler{},
		&handler.ServerHandler{},
		&handler.MessageHandler{},
		&handler.AttachmentHandler{},
		&handler.RealtimeHandler{},
	)
}

func TestCORSPreflightRequest(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest("OPTIONS", "/api/ping", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	rr := httptest.NewRecorder()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
	)
	cors(server.router).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %v, want *", got)
	}

	allowHeaders := rr.Header().Get("Access-Control-Allow-Headers")
	if allowHeaders == "" {
		t.Error("Access-Control-Allow-Headers should not be empty for OPTIONS request")
	}
}

func TestPingRoute(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest("GET", "/api/ping", nil)
	rr := httptest.NewRecorder()

	server.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GET /api/ping = %d, want %d", rr.Code, http.StatusOK)
	}
}
