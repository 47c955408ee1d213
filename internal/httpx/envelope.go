// Package httpx renders the storefront response envelope.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/NordCoder/Foodcart/internal/apperr"
	"github.com/NordCoder/Foodcart/internal/obs"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	ErrorCode  apperr.Code `json:"errorCode"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteOK(w http.ResponseWriter, msg string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    msg,
		Data:       data,
	})
}

// WriteError is the single place where failures become responses.
// Anything that is not an *apperr.Error is reported as ER_UNEXP and logged.
func WriteError(ctx context.Context, w http.ResponseWriter, log *zap.Logger, err error) {
	ae := apperr.As(err)
	if ae.Status >= http.StatusInternalServerError && log != nil {
		obs.WithTrace(ctx, log).Error("request failed",
			zap.String("error_code", string(ae.Code)),
			zap.Int("status", ae.Status),
			zap.Error(err),
		)
	}
	WriteJSON(w, ae.Status, ErrorResponse{
		Success:    false,
		StatusCode: ae.Status,
		Message:    ae.Message,
		ErrorCode:  ae.Code,
	})
}

// DecodeJSON reads a bounded JSON body into T.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, apperr.BadRequest("Request body is empty!")
		}
		return v, apperr.Wrap(http.StatusBadRequest, apperr.CodeBadRequest, "Malformed request body!", err)
	}
	return v, nil
}
