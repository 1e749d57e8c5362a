package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/metrics"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler reports the persistent counters.
func StatsHandler(counters metrics.CounterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := counters.GetAll()
		if err != nil {
			log.Error("Failed to get counters from store", "error", err)
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}
		WriteJSON(w, stats)
	}
}
