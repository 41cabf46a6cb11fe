package server

import (
	"net/http"

	apperr "github.com/matzehuels/assetgraph/pkg/errors"
)

// StatusFor maps an error to an HTTP status code by its error code.
func StatusFor(err error) int {
	switch apperr.GetCode(err) {
	case apperr.ErrCodeValidation, apperr.ErrCodeGraphCapability, apperr.ErrCodeDuplicateAsset,
		apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case apperr.ErrCodeUnknownAsset:
		return http.StatusNotFound
	case apperr.ErrCodeUnsupportedLayout:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := apperr.GetCode(err)
	msg := apperr.UserMessage(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: msg})
}
