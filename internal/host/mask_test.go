package host

import "testing"

func TestMaskMatch(t *testing.T) {
	cases := []struct {
		mask  string
		group string
		want  bool
	}{
		{"", "real\\usd", true},
		{"*", "demo", true},
		{"real*", "real-usd", true},
		{"real*", "demo-usd", false},
		{"demo,real*", "demo", true},
		{"demo, real*", "real-eur", true},
		{"*,!demo*", "demo-usd", false},
		{"*,!demo*", "real-usd", true},
		{"!demo*", "real-usd", true},
		{"!demo*", "demo-1", false},
		{"real-?", "real-a", true},
		{"real-[ab]", "real-c", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
	}
	for _, tc := range cases {
		m, err := CompileMask(tc.mask)
		if err != nil {
			t.Fatalf("CompileMask(%q) error = %v", tc.mask, err)
		}
		if got := m.Match(tc.group); got != tc.want {
			t.Fatalf("Match(%q, %q) = %v, want %v", tc.mask, tc.group, got, tc.want)
		}
	}
}

func TestCompileMaskErrors(t *testing.T) {
	for _, mask := range []string{"!", "real,!", "*, ! "} {
		if _, err := CompileMask(mask); err == nil {
			t.Fatalf("CompileMask(%q) expected error", mask)
		}
	}
}

func TestInRange(t *testing.T) {
	if !InRange(10, 10, 20) || !InRange(20, 10, 20) {
		t.Fatal("bounds are inclusive")
	}
	if InRange(9, 10, 20) || InRange(21, 10, 20) {
		t.Fatal("outside range matched")
	}
}
