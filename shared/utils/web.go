package utils

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/openforum-dev/openforum/shared/errors"
)

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var statusErr *internal_errors.ErrorWithStatusCode
	if errors.As(err, &statusErr) {
		http.Error(w, statusErr.Message, statusErr.StatusCode)
		return
	}
	var validationErr *internal_errors.ValidationError
	if errors.As(err, &validationErr) {
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, internal_errors.ErrIndexUnavailable) {
		http.Error(w, "Search backend unavailable", http.StatusServiceUnavailable)
		return
	}
	if errors.Is(err, internal_errors.NotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	// default error is 500
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: "Required fields missing or invalid", StatusCode: http.StatusBadRequest}
	}
	return nil
}
