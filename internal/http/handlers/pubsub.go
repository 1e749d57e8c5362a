package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/matchday/internal/notifier"
	"github.com/mauv0809/matchday/internal/pubsub"
)

// PushMessage is the envelope Pub/Sub posts to push subscriptions.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"` // base64-encoded message payload
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}

// decodePush reads a push envelope and returns the raw MessagePack payload.
func decodePush(r *http.Request) (PushMessage, []byte, error) {
	var pubsubMsg PushMessage
	bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return pubsubMsg, nil, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	// Parse the outer JSON to get `data`
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		return pubsubMsg, nil, fmt.Errorf("invalid JSON: %w", err)
	}
	// Decode base64 to raw MessagePack bytes
	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		return pubsubMsg, nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return pubsubMsg, rawData, nil
}

// MatchEventHandler turns pushed match events into Slack notices.
// Malformed messages are acknowledged with 400 so Pub/Sub stops redelivering
// them; notifier failures return 500 to get a retry.
func MatchEventHandler(n notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		push, rawData, err := decodePush(r)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var event pubsub.MatchEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid MessagePack payload", http.StatusBadRequest)
			return
		}
		if !event.Type.Valid() {
			log.Warn("Dropping unknown match event", "event", event.Type)
			http.Error(w, "Unknown match event", http.StatusBadRequest)
			return
		}
		isDryRun := IsDryRunFromContext(r)
		log.Info("Received match event", "event", event.Type, "matchID", event.Match.ID, "messageID", push.Message.MessageID, "dryRun", isDryRun)

		if err := notifier.Dispatch(n, event, isDryRun); err != nil {
			log.Error("Failed to notify match event", "event", event.Type, "error", err)
			http.Error(w, "Failed to notify match event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
