package http

import (
	"encoding/json"
	"net/http"

	"github.com/rooftopcms/rooftop"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	rooftop.ECONFLICT:     http.StatusConflict,
	rooftop.EINVALID:      http.StatusBadRequest,
	rooftop.ENOTFOUND:     http.StatusNotFound,
	rooftop.EINCONSISTENT: http.StatusInternalServerError,
	rooftop.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// errorResponse is the WordPress REST error shape.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}

// Error writes err as a JSON error response. Server-side failures are logged.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := rooftop.ErrorCode(err), rooftop.ErrorMessage(err)
	status := ErrorStatusCode(code)

	if status == http.StatusInternalServerError {
		s.Logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
			"err", err,
		)
	}
	if code == rooftop.EINCONSISTENT {
		message = "Internal error"
	}

	var resp errorResponse
	resp.Code = "rest_" + code
	resp.Message = message
	resp.Data.Status = status
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
