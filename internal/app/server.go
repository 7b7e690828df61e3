package app

import (
	"log"
	"net/http"
	"time"

	"concord/internal/handler"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	router *mux.Router
}

func NewServer(
	userHandler *handler.UserHandler,
	serverHandler *handler.ServerHandler,
	messageHandler *handler.MessageHandler,
	attachmentHandler *handler.AttachmentHandler,
	realtimeHandler *handler.RealtimeHandler,
) *Server {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ping", handler.Ping).Methods("GET", "OPTIONS")
	userHandler.RegisterRoutes(api)
	serverHandler.RegisterRoutes(api)
	messageHandler.RegisterRoutes(api)
	attachmentHandler.RegisterRoutes(api)

	// Realtime endpoint lives outside /api: /realtime/chat/{channel_id}/
	realtimeHandler.RegisterRoutes(router)

	// The doc route must come first: mux matches in registration order and
	// the /swagger/ prefix would otherwise shadow it.
	router.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.json")
	})
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return &Server{router: router}
}

func (s *Server) Run(port string) {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With"}),
	)

	srv := &http.Server{
		Handler:      cors(s.router),
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(srv.ListenAndServe())
}
