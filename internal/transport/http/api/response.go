// Package api writes the JSON envelope every /api/v1 route answers with.
package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// Machine-readable error codes. Clients switch on these, so they are stable.
const (
	CodeInvalidPayload   = "invalid_payload"
	CodeValidation       = "validation_error"
	CodeInvalidCount     = "invalid_count"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeRateLimited      = "rate_limited"
	CodePayloadTooLarge  = "payload_too_large"
	CodeExportFailed     = "export_failed"
	CodeInternal         = "internal_error"
)

// fallbackBody is sent when the envelope itself cannot be encoded.
const fallbackBody = `{"success":false,"error":{"code":"internal_error","message":"failed to encode response"}}` + "\n"

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON encodes the envelope before touching the response, so an
// unencodable payload turns into a 500 instead of a truncated 200.
// Statements carry personal data and are never cached.
func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		slog.Error("encode json envelope failed", "err", err, "requestId", payload.RequestID)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(fallbackBody)
	}
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	FailWithDetails(w, status, code, message, nil, requestID)
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// InvalidPayload answers a body that is not a single well-formed JSON document.
func InvalidPayload(w http.ResponseWriter, requestID string) {
	Fail(w, http.StatusBadRequest, CodeInvalidPayload, "invalid request payload", requestID)
}

func NotFound(w http.ResponseWriter, message, requestID string) {
	Fail(w, http.StatusNotFound, CodeNotFound, message, requestID)
}
