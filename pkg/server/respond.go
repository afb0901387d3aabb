package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/eventlayout/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Details any         `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError writes err as an error body. details, when non-nil, is
// attached (the validation report of a refused export).
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, details any) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:    code,
		Message: errors.UserMessage(err),
		Details: details,
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSheetNotFound, errors.ErrCodeFileNotFound:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeLayoutInvalid:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
