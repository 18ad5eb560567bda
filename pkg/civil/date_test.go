package civil_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/JaimeStill/pendakwaan/pkg/civil"
)

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    civil.Date
		wantErr bool
	}{
		{"date", `"2026-03-14"`, civil.Date{Year: 2026, Month: time.March, Day: 14}, false},
		{"null", `null`, civil.Date{}, false},
		{"empty", `""`, civil.Date{}, false},
		{"timestamp rejected", `"2026-03-14T10:00:00Z"`, civil.Date{}, true},
		{"invalid day", `"2026-02-30"`, civil.Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got civil.Date
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	out, _ := json.Marshal(struct {
		A civil.Date `json:"a"`
		B civil.Date `json:"b"`
	}{A: civil.Date{Year: 2026, Month: time.January, Day: 2}})
	if string(out) != `{"a":"2026-01-02","b":null}` {
		t.Errorf("marshal = %s", out)
	}
}

func TestDateScanAndValue(t *testing.T) {
	var d civil.Date
	if err := d.Scan(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d.String() != "2025-12-31" {
		t.Errorf("scanned %s", d)
	}

	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Errorf("Scan(nil) = %v, %v", d, err)
	}

	v, err := civil.Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v", v, err)
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestDateAfter(t *testing.T) {
	a := civil.Date{Year: 2026, Month: time.May, Day: 1}
	b := civil.Date{Year: 2026, Month: time.April, Day: 30}
	if !a.After(b) || b.After(a) {
		t.Error("After ordering wrong")
	}
}
