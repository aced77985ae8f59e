package response

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// APIResponse is the envelope every custody endpoint writes. RequestID
// echoes the chi request id so a client-side report can be matched to the
// server logs for the same call.
type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	write(w, status, APIResponse{
		Status:    "success",
		RequestID: middleware.GetReqID(r.Context()),
		Data:      data,
	})
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	write(w, status, APIResponse{
		Status:    "error",
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func write(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
