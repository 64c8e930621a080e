package amqp

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportRequestMessage asks a worker to build the credit facility report.
// Params is passed to the report unchanged, so it may carry wrong-typed
// fields; the report reports those as diagnostics.
type ReportRequestMessage struct {
	RequestID string         `json:"request_id"`
	Params    map[string]any `json:"params"`
	Export    bool           `json:"export"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewReportRequestMessage creates a request with a fresh request ID.
func NewReportRequestMessage(params map[string]any, export bool) *ReportRequestMessage {
	return &ReportRequestMessage{
		RequestID: uuid.NewString(),
		Params:    params,
		Export:    export,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestMessageFromJSON decodes a request. Numbers in params are kept
// as json.Number so integer fields survive without float rounding.
func ReportRequestMessageFromJSON(data []byte) (*ReportRequestMessage, error) {
	var msg ReportRequestMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReportResultMessage carries a built report back to the requester.
type ReportResultMessage struct {
	RequestID string          `json:"request_id"`
	Response  json.RawMessage `json:"response,omitempty"`
	ExportRef string          `json:"export_ref,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewReportResultMessage(requestID string, response json.RawMessage) *ReportResultMessage {
	return &ReportResultMessage{
		RequestID: requestID,
		Response:  response,
		Timestamp: time.Now(),
	}
}

func (m *ReportResultMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportResultMessageFromJSON(data []byte) (*ReportResultMessage, error) {
	var msg ReportResultMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
