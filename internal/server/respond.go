package server

import (
	"encoding/json"
	"net/http"

	apperr "github.com/matzehuels/libscope/pkg/errors"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the status code and message carried by err.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.HTTPStatus(err), errorBody{Status: statusError, Message: apperr.UserMessage(err)})
}
