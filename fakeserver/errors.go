package fakeserver

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// failure is the body of every non-2xx answer. Code is a stable snake_case
// identifier; Message is for humans.
type failure struct {
	Status  string `json:"status"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func fail(w http.ResponseWriter, status int, code, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failure{
		Status:  "error",
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
