package annotation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		title   string
		cost    int
		flags   []Flag
		content string
	}{
		{"2h - Write report", 120, nil, "Write report"},
		{"[30m] ! Call client", 30, []Flag{Sensitive}, "Call client"},
		{"Buy milk", 0, nil, "Buy milk"},
		{"1d task", 300, nil, "task"},
		{"(45m) Review PR", 45, nil, "Review PR"},
		{"[1.5h]- Draft slides", 90, nil, "Draft slides"},
		{"0.5D Offsite prep", 150, nil, "Offsite prep"},
		{"3H Deep work", 180, nil, "Deep work"},
		{"10.9m Stretch", 10, nil, "Stretch"},
		{"!!Pay rent", 0, []Flag{Sensitive}, "Pay rent"},
		{"- ! Secret", 0, []Flag{Sensitive}, "Secret"},
		{"2 apples", 0, nil, "2 apples"},
		{"[30m]", 30, nil, ""},
		{"", 0, nil, ""},
		{"15m Reply to Bob's \"urgent\" mail!", 15, nil, "Reply to Bob's \"urgent\" mail!"},
		{"20m café run", 20, nil, "café run"},
		{"99999999999999999999d task", math.MaxInt, nil, "task"},
		{"[1" + strings.Repeat("9", 400) + "m] huge", math.MaxInt, nil, "huge"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, err := Parse(tt.title)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.title, err)
			}
			if got.CostMinutes != tt.cost {
				t.Errorf("Expected cost %d, got %d", tt.cost, got.CostMinutes)
			}
			if !reflect.DeepEqual(got.Flags, tt.flags) {
				t.Errorf("Expected flags %q, got %q", tt.flags, got.Flags)
			}
			if got.Content != tt.content {
				t.Errorf("Expected content %q, got %q", tt.content, got.Content)
			}
		})
	}
}

func TestParseContentIsStable(t *testing.T) {
	titles := []string{"2h - Write report", "[30m] ! Call client", "Buy milk", "1d task"}
	for _, title := range titles {
		first, err := Parse(title)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", title, err)
		}
		second, err := Parse(first.Content)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", first.Content, err)
		}
		if second.Content != first.Content || second.CostMinutes != 0 || len(second.Flags) != 0 {
			t.Errorf("Re-parsing %q gave %+v", first.Content, second)
		}
	}
}

func TestHas(t *testing.T) {
	a, _ := Parse("[30m] ! Call client")
	if !a.Has(Sensitive) {
		t.Error("Expected sensitive flag")
	}
	b, _ := Parse("Call client")
	if b.Has(Sensitive) {
		t.Error("Did not expect sensitive flag")
	}
}

func TestCustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HoursPerDay = 8
	cfg.MinuteUnit = 'n'
	cfg.Flags = []Flag{'*', Sensitive}

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a, err := p.Parse("[1d] !* Plan sprint")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if a.CostMinutes != 480 {
		t.Errorf("Expected 480 minutes, got %d", a.CostMinutes)
	}
	if !reflect.DeepEqual(a.Flags, []Flag{'*', Sensitive}) {
		t.Errorf("Expected flags in config order, got %q", a.Flags)
	}
	if a.Content != "Plan sprint" {
		t.Errorf("Expected content 'Plan sprint', got %q", a.Content)
	}

	// 'm' is no longer a unit, so "5m" stays in the content.
	b, err := p.Parse("5m walk")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if b.CostMinutes != 0 || b.Content != "5m walk" {
		t.Errorf("Expected uncosted '5m walk', got %+v", b)
	}

	c, err := p.Parse("5N walk")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.CostMinutes != 5 {
		t.Errorf("Expected 5 minutes, got %d", c.CostMinutes)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := map[string]func(*Config){
		"zero hours":     func(c *Config) { c.HoursPerDay = 0 },
		"duplicate unit": func(c *Config) { c.DayUnit = 'H' },
		"digit unit":     func(c *Config) { c.MinuteUnit = '1' },
		"no flags":       func(c *Config) { c.Flags = nil },
		"dash flag":      func(c *Config) { c.Flags = []Flag{'-'} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestUnknownGranularity(t *testing.T) {
	p := Default()
	_, err := p.costMinutes("3w")
	var ugErr *UnknownGranularityError
	if !errors.As(err, &ugErr) {
		t.Fatalf("Expected UnknownGranularityError, got %v", err)
	}
	if ugErr.Unit != 'w' {
		t.Errorf("Expected unit 'w', got %q", ugErr.Unit)
	}
}
