package handler

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecodeNumber(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"integer", `42`, 42, false},
		{"float", `42.5`, 42.5, false},
		{"numeric string", `"50000"`, 50000, false},
		{"float string", `"42.5"`, 42.5, false},
		{"word", `"lots"`, 0, true},
		{"boolean", `true`, 0, true},
		{"object", `{}`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeNumber("amount", json.RawMessage(tc.raw))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.raw)
				}
				if err.Error() != "amount must be a number" {
					t.Fatalf("unexpected message: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestDecodeTime(t *testing.T) {
	got, err := decodeTime("dueAt", json.RawMessage(`"2026-03-01T10:00:00Z"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := decodeTime("dueAt", json.RawMessage(`"tomorrow"`)); err == nil {
		t.Fatal("expected error for non-date string")
	} else if err.Error() != "dueAt must be a valid date" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestIsNull(t *testing.T) {
	if !isNull(json.RawMessage(`null`)) {
		t.Fatal("expected null literal to be recognized")
	}
	if isNull(json.RawMessage(`"null"`)) {
		t.Fatal("quoted string is not a null literal")
	}
	if isNull(nil) {
		t.Fatal("absent field is not a null literal")
	}
}
