// Package http exposes the credit facility report over a JSON API.
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"creditreport/internal/report"
)

// MaxBodyBytes bounds POST bodies.
const MaxBodyBytes = 1 << 20

// exportKey toggles export in both the query string and the body.
const exportKey = "export"

// ReportRequest is a parsed build request. Params is handed to the report
// untouched apart from integer conversion of query values.
type ReportRequest struct {
	Params map[string]any
	Export bool
}

// ParseReportRequest reads params from the query string and, for POST,
// from a JSON or form-encoded body. Body values override query values.
func ParseReportRequest(w http.ResponseWriter, r *http.Request) (ReportRequest, error) {
	req := ReportRequest{Params: map[string]any{}}
	mergeValues(&req, r.URL.Query())

	if r.Method != http.MethodPost {
		return req, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return req, fmt.Errorf("read body: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return req, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return req, fmt.Errorf("parse form: %w", err)
		}
		mergeValues(&req, form)
		return req, nil
	}

	return req, mergeJSON(&req, body)
}

func mergeValues(req *ReportRequest, values url.Values) {
	for key := range values {
		raw := sanitizeInput(values.Get(key))
		if key == exportKey {
			req.Export, _ = strconv.ParseBool(strings.TrimSpace(raw))
			continue
		}
		req.Params[key] = queryValue(key, raw)
	}
}

// queryValue converts range bounds that parse as integers. Anything else,
// the group mask included, is passed through as the raw string.
func queryValue(key, raw string) any {
	if key == report.FieldFrom || key == report.FieldTo {
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return n
		}
	}
	return raw
}

func mergeJSON(req *ReportRequest, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return fmt.Errorf("decode JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode JSON body: trailing data")
	}

	for key, value := range data {
		if key == exportKey {
			if b, ok := value.(bool); ok {
				req.Export = b
			}
			continue
		}
		if s, ok := value.(string); ok {
			value = sanitizeInput(s)
		}
		req.Params[key] = value
	}
	return nil
}

// sanitizeInput drops control characters other than tab, newline and
// carriage return. Whitespace is kept: a group mask reaches the host as sent.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
