package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func newRouter(hub *wsHub, staticDir string) http.Handler {
	r := mux.NewRouter().StrictSlash(false)

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/vehicles", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.snapshot()); err != nil {
			log.Printf("vehicles encode error: %v", err)
		}
	}).Methods(http.MethodGet)

	r.HandleFunc("/data.json", hub.handleWebSocket)

	if staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}
	return handlers.LoggingHandler(os.Stdout, r)
}
