package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/matchday/internal/match"
)

// ListMatchesHandler returns the matches in the bucket named by ?status=,
// every match by default.
func ListMatchesHandler(store match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keep, err := match.StatusFilter(match.Status(r.URL.Query().Get("status")))
		if err != nil {
			WriteError(w, err)
			return
		}
		matches, err := store.ListMatches(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, match.Filter(matches, keep))
	}
}

func GetMatchHandler(store match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := store.GetMatch(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			WriteError(w, err)
			return
		}
		WriteJSON(w, m)
	}
}

func CreateMatchHandler(store match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var n match.NewMatch
		if err := decodeBody(r, &n); err != nil {
			writeBadRequest(w, "invalid match body: "+err.Error())
			return
		}
		m, err := store.CreateMatch(r.Context(), n)
		if err != nil {
			WriteError(w, err)
			return
		}
		log.Info("Created match", "matchID", m.ID, "fixture", m.Team1Name+" vs "+m.Team2Name)
		writeJSONStatus(w, http.StatusCreated, m)
	}
}

// PatchMatchHandler applies a partial update. Only the fields present in the
// body are written.
func PatchMatchHandler(store match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		var p match.Patch
		if err := decodeBody(r, &p); err != nil {
			writeBadRequest(w, "invalid patch body: "+err.Error())
			return
		}
		m, err := store.PatchMatch(r.Context(), id, p)
		if err != nil {
			WriteError(w, err)
			return
		}
		log.Info("Patched match", "matchID", id, "fields", p.Fields())
		WriteJSON(w, m)
	}
}

func DeleteMatchHandler(store match.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := store.DeleteMatch(r.Context(), id); err != nil {
			WriteError(w, err)
			return
		}
		log.Info("Deleted match", "matchID", id)
		w.WriteHeader(http.StatusNoContent)
	}
}
