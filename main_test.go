package main

import (
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/harrisonrobin/morningtasks/pkg/annotation"
)

func TestPlanDay(t *testing.T) {
	defer func() { dayFlag = "" }()

	dayFlag = "2023-03-15"
	day, err := planDay()
	if err != nil {
		t.Fatalf("planDay failed: %v", err)
	}
	if want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.Local); !day.Equal(want) {
		t.Errorf("Expected %v, got %v", want, day)
	}

	dayFlag = "15/03/2023"
	if _, err := planDay(); err == nil {
		t.Error("Expected error for malformed --date")
	}

	dayFlag = ""
	day, err = planDay()
	if err != nil {
		t.Fatalf("planDay failed: %v", err)
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Errorf("Expected midnight, got %v", day)
	}
}

func TestParseRow(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		title string
		want  []string
	}{
		{"[30m] ! Call client", []string{"[30m] ! Call client", "30m", "!", "Call client"}},
		{"Buy milk", []string{"Buy milk", "-", "", "Buy milk"}},
		{"2h - Write report", []string{"2h - Write report", "2h", "", "Write report"}},
	}

	for _, tt := range tests {
		got, err := parseRow(annotation.Default(), tt.title)
		if err != nil {
			t.Fatalf("parseRow(%q) failed: %v", tt.title, err)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseRow(%q)[%d] = %q, want %q", tt.title, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMinutes(t *testing.T) {
	tests := map[int]string{0: "-", 15: "15m", 60: "1h", 90: "1.5h"}
	for in, want := range tests {
		if got := minutes(in); got != want {
			t.Errorf("minutes(%d) = %q, want %q", in, got, want)
		}
	}
}
