package httpx

import (
	"encoding/json"
	"net/http"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    any  `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
	Meta    any       `json:"meta,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func meta(r *http.Request) any {
	if id := RequestIDFrom(r); id != "" {
		return map[string]any{"request_id": id}
	}
	return nil
}

// JSONSuccess writes the standard success envelope.
func JSONSuccess(w http.ResponseWriter, r *http.Request, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data, Meta: meta(r)})
}

// JSONError writes the standard error envelope.
func JSONError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Success: false,
		Error:   errorBody{Code: code, Message: message},
		Meta:    meta(r),
	})
}
