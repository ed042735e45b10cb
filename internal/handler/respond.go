package handler

import (
	"encoding/json"
	"net/http"

	"github.com/missaelcorm/notas-service/pkg/apperrors"
)

// errorBody is the structured error response: a machine-checkable code
// and a human-readable message.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.HTTPStatus(err), errorBody{
		Error: apperrors.MessageOf(err),
		Code:  string(apperrors.CodeOf(err)),
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("invalid JSON body")
	}
	return nil
}
