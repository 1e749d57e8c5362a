package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/matchday/internal/engine"
	"github.com/mauv0809/matchday/internal/match"
)

// Request bodies of the action endpoints.
type (
	FinishRequest struct {
		Confirm bool `json:"confirm"`
	}
	ScoreRequest struct {
		Team  string `json:"team"`
		Delta int    `json:"delta"`
	}
	MinuteRequest struct {
		Minute *int `json:"minute"`
	}
	ExtraTimeRequest struct {
		ExtraTime *int `json:"extraTime"`
	}
)

// actionHandler runs an operator action on the match named in the path and
// writes the updated document.
func actionHandler(run func(ctx context.Context, id string, r *http.Request) (match.Match, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := run(r.Context(), mux.Vars(r)["id"], r)
		if err != nil {
			var br badRequest
			if errors.As(err, &br) {
				writeBadRequest(w, string(br))
				return
			}
			WriteError(w, err)
			return
		}
		WriteJSON(w, m)
	}
}

type badRequest string

func (b badRequest) Error() string { return string(b) }

func GoLiveHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		return actions.GoLive(ctx, id)
	})
}

func EndLiveHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		return actions.EndLive(ctx, id)
	})
}

func TogglePauseHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		return actions.TogglePause(ctx, id)
	})
}

// FinishHandler requires {"confirm": true}; finishing cannot be undone.
func FinishHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		var req FinishRequest
		if err := decodeBody(r, &req); err != nil {
			return match.Match{}, badRequest("invalid finish body: " + err.Error())
		}
		return actions.FinishMatch(ctx, id, req.Confirm)
	})
}

func ScoreHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		var req ScoreRequest
		if err := decodeBody(r, &req); err != nil {
			return match.Match{}, badRequest("invalid score body: " + err.Error())
		}
		team, err := match.ParseTeam(req.Team)
		if err != nil {
			return match.Match{}, err
		}
		return actions.AdjustScore(ctx, id, team, req.Delta)
	})
}

func MinuteHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		var req MinuteRequest
		if err := decodeBody(r, &req); err != nil {
			return match.Match{}, badRequest("invalid minute body: " + err.Error())
		}
		if req.Minute == nil {
			return match.Match{}, badRequest("minute is required")
		}
		return actions.SetMinute(ctx, id, *req.Minute)
	})
}

func ExtraTimeHandler(actions *engine.Actions) http.HandlerFunc {
	return actionHandler(func(ctx context.Context, id string, r *http.Request) (match.Match, error) {
		var req ExtraTimeRequest
		if err := decodeBody(r, &req); err != nil {
			return match.Match{}, badRequest("invalid extra time body: " + err.Error())
		}
		if req.ExtraTime == nil {
			return match.Match{}, badRequest("extraTime is required")
		}
		return actions.SetExtraTime(ctx, id, *req.ExtraTime)
	})
}
