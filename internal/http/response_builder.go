package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ExportRefHeader carries the reference of an exported report.
const ExportRefHeader = "X-Export-Ref"

// JSONResponseBuilder provides a fluent API for JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the value encoded as the response body.
func (b *JSONResponseBuilder) Body(v any) *JSONResponseBuilder {
	b.body = v
	return b
}

// Write encodes the body before touching the writer so an encoding failure
// can still be reported as a 500.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	var payload []byte
	if b.body != nil {
		var err error
		payload, err = json.Marshal(b.body)
		if err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
	}

	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.statusCode)
	if payload != nil {
		_, _ = w.Write(append(payload, '\n'))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(statusCode).Body(errorBody{Error: message})
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}
