package mux

import (
	"encoding/json"
	"errors"
	"net/http"

	"shed-server/pkg/model"
	"shed-server/pkg/playable/shed"
	"shed-server/pkg/room"
	"shed-server/pkg/store"

	"github.com/sirupsen/logrus"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	// GameID is set when a game already exists for the request
	GameID string `json:"gameId,omitempty"`
}

// writeGameError maps an error from the game service to a response
func writeGameError(w http.ResponseWriter, err error) {
	var exists room.SessionExistsError
	if errors.As(err, &exists) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Message:    err.Error(),
			StatusCode: http.StatusConflict,
			GameID:     exists.GameID,
		})
		return
	}

	var countErr shed.PlayerCountError
	var userErr model.UserError
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		writeJSONError(w, http.StatusNotFound, err)
	case errors.Is(err, shed.ErrNotInGame):
		writeJSONError(w, http.StatusForbidden, err)
	case errors.Is(err, store.ErrConcurrentMutation):
		writeJSONError(w, http.StatusConflict, store.ErrConcurrentMutation)
	case errors.As(err, &countErr), errors.As(err, &userErr):
		writeJSONError(w, http.StatusBadRequest, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
