package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/repositories"
	"github.com/cbodonnell/swipeduel/pkg/state"
	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func HandleGetState(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			if _, ok := err.(*state.ErrNoSnapshot); ok {
				http.Error(w, "Game has not started", http.StatusServiceUnavailable)
				return
			}
			log.Error("failed to get snapshot: %v", err)
			http.Error(w, "Failed to get state", http.StatusInternalServerError)
			return
		}
		writeJSON(w, snapshot)
	}
}

func HandleListResults(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := repositories.DefaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		results, err := repository.ListRoundResults(r.Context(), limit)
		if err != nil {
			log.Error("failed to list round results: %v", err)
			http.Error(w, "Failed to list results", http.StatusInternalServerError)
			return
		}
		writeJSON(w, results)
	}
}

func HandleGetResult(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID := mux.Vars(r)["roundID"]
		result, err := repository.GetRoundResult(r.Context(), roundID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Round not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get round result %s: %v", roundID, err)
			http.Error(w, "Failed to get result", http.StatusInternalServerError)
			return
		}
		writeJSON(w, result)
	}
}
