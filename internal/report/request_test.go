package report

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseParamsDefaults(t *testing.T) {
	p, issues := ParseParams(map[string]any{})
	if p != DefaultParams() || len(issues) != 0 {
		t.Fatalf("got %+v issues=%v", p, issues)
	}
	if p.Group != "" || p.From != 0 || p.To != math.MaxInt64 {
		t.Fatalf("unexpected defaults %+v", p)
	}

	p, _ = ParseParams(nil)
	if p != DefaultParams() {
		t.Fatalf("nil request: got %+v", p)
	}
}

func TestParseParamsValues(t *testing.T) {
	cases := []struct {
		name string
		req  map[string]any
		want Params
	}{
		{"json floats", map[string]any{"group": "real*", "from": float64(100), "to": float64(200)}, Params{"real*", 100, 200}},
		{"go ints", map[string]any{"from": 5, "to": int64(6)}, Params{"", 5, 6}},
		{"int32", map[string]any{"to": int32(7)}, Params{"", 0, 7}},
		{"json number", map[string]any{"from": json.Number("1700000000")}, Params{"", 1700000000, math.MaxInt64}},
		{"nil values", map[string]any{"group": nil, "from": nil}, DefaultParams()},
		{"negative", map[string]any{"from": float64(-10)}, Params{"", -10, math.MaxInt64}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, issues := ParseParams(tc.req)
			if got != tc.want || len(issues) != 0 {
				t.Fatalf("got %+v issues=%v, want %+v", got, issues, tc.want)
			}
		})
	}
}

func TestParseParamsWrongTypesKeepDefaults(t *testing.T) {
	p, issues := ParseParams(map[string]any{
		"group": 12,
		"from":  "yesterday",
		"to":    1.5,
	})
	if p != DefaultParams() {
		t.Fatalf("wrong types must keep defaults, got %+v", p)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", issues)
	}
	fields := map[string]bool{}
	for _, i := range issues {
		fields[i.Field] = true
		if i.Error() == "" {
			t.Fatal("empty issue message")
		}
	}
	for _, f := range []string{FieldGroup, FieldFrom, FieldTo} {
		if !fields[f] {
			t.Fatalf("missing issue for %s", f)
		}
	}
}

func TestParseParamsRejectsBadNumbers(t *testing.T) {
	for _, v := range []any{math.NaN(), math.Inf(1), float64(1 << 63), json.Number("1.5"), true} {
		if _, issues := ParseParams(map[string]any{"from": v}); len(issues) != 1 {
			t.Fatalf("%v: expected one issue, got %v", v, issues)
		}
	}
}
