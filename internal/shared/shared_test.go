package shared

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if a == b {
		t.Error("expected unique state tokens")
	}
	if strings.ContainsAny(a, "+/=") {
		t.Errorf("expected URL-safe token, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"n": 1}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(compact) != `{"n":1}` {
		t.Errorf("expected compact JSON, got %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(pretty), "  \"n\": 1") {
		t.Errorf("expected indented JSON, got %s", pretty)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		want string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 30000, "0:30"},
		{"exact minute", 60000, "1:00"},
		{"typical track", 214000, "3:34"},
		{"pads seconds", 125000, "2:05"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.ms); got != tc.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tc.ms, got, tc.want)
			}
		})
	}
}
