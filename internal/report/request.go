package report

import (
	"encoding/json"
	"fmt"
	"math"
)

// Request field names.
const (
	FieldGroup = "group"
	FieldFrom  = "from"
	FieldTo    = "to"
)

// Params is a fully resolved report request.
type Params struct {
	Group string `json:"group"`
	From  int64  `json:"from"`
	To    int64  `json:"to"`
}

// DefaultParams is used for any field that is absent or unusable: every
// group, over the whole time range.
func DefaultParams() Params {
	return Params{Group: "", From: 0, To: math.MaxInt64}
}

// FieldIssue describes a request field that was present but ignored.
type FieldIssue struct {
	Field  string
	Reason string
}

func (i FieldIssue) Error() string {
	return fmt.Sprintf("request field %q ignored: %s", i.Field, i.Reason)
}

// ParseParams extracts the report parameters from an untyped request. It
// never fails: unusable fields keep their default and are reported back as
// issues.
func ParseParams(req map[string]any) (Params, []FieldIssue) {
	p := DefaultParams()
	var issues []FieldIssue

	if v, ok := req[FieldGroup]; ok && v != nil {
		if s, ok := v.(string); ok {
			p.Group = s
		} else {
			issues = append(issues, FieldIssue{Field: FieldGroup, Reason: fmt.Sprintf("expected string, got %T", v)})
		}
	}

	for _, f := range []struct {
		name string
		dst  *int64
	}{{FieldFrom, &p.From}, {FieldTo, &p.To}} {
		v, ok := req[f.name]
		if !ok || v == nil {
			continue
		}
		n, err := toInt64(v)
		if err != nil {
			issues = append(issues, FieldIssue{Field: f.name, Reason: err.Error()})
			continue
		}
		*f.dst = n
	}

	return p, issues
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("integer %v out of range", n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n.String())
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
