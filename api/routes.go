package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func RegisterRoutes(h *Handler) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.Health).Methods("GET")

	// Entry gate
	router.HandleFunc(h.Gate.EntryPath(), h.EntryPrompt).Methods("GET")
	router.HandleFunc(h.Gate.EntryPath(), h.Enter).Methods("POST")

	// Distance endpoint
	router.HandleFunc("/distance", h.Distance).Methods("POST")

	// Tracking endpoints, entered visitors only
	track := router.PathPrefix("/track").Subrouter()
	track.Use(h.Gate.Require)
	track.HandleFunc("", h.Track).Methods("GET", "POST")
	track.HandleFunc("", h.StopTracking).Methods("DELETE")
	track.HandleFunc("/status", h.Status).Methods("GET")
	track.HandleFunc("/map", h.MapState).Methods("GET")
	track.HandleFunc("/{service_id}/trail", h.Trail).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return cors(router)
}
