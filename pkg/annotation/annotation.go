// Package annotation parses the mini-language embedded in task titles:
//
//	[30m] ! Call client
//	2h - Write report
//	1.5d Quarterly planning
//
// An optional bracketed cost estimate comes first, then an optional dash,
// then any flag characters, then the free-text content.
package annotation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Flag is a single-character marker placed after the cost estimate.
type Flag rune

// Sensitive marks a task that must not appear in less private outputs such
// as the email draft.
const Sensitive Flag = '!'

// ErrNoMatch is returned when a title does not fit the grammar at all.
// Callers skip such tasks.
var ErrNoMatch = errors.New("title does not match task annotation grammar")

// UnknownGranularityError reports a cost unit that is not one of the
// configured minute, hour or day letters.
type UnknownGranularityError struct {
	Unit rune
}

func (e *UnknownGranularityError) Error() string {
	return fmt.Sprintf("unknown cost granularity %q", e.Unit)
}

// Annotation is the structured form of a task title.
type Annotation struct {
	CostMinutes int
	Flags       []Flag
	Content     string
}

// Has reports whether f was present in the title.
func (a Annotation) Has(f Flag) bool {
	for _, flag := range a.Flags {
		if flag == f {
			return true
		}
	}
	return false
}

// Config controls the letters and constants of the grammar.
type Config struct {
	// HoursPerDay is the length of a work-day used to convert `d` costs.
	HoursPerDay float64
	MinuteUnit  rune
	HourUnit    rune
	DayUnit     rune
	// Flags lists the recognised flag characters, in reporting order.
	Flags []Flag
}

// DefaultConfig returns the stock grammar: m/h/d units, a five hour work-day
// and the sensitive flag.
func DefaultConfig() Config {
	return Config{
		HoursPerDay: 5,
		MinuteUnit:  'm',
		HourUnit:    'h',
		DayUnit:     'd',
		Flags:       []Flag{Sensitive},
	}
}

// Validate checks that cfg describes an unambiguous grammar.
func (cfg Config) Validate() error {
	if cfg.HoursPerDay <= 0 {
		return fmt.Errorf("hours per day must be positive, got %v", cfg.HoursPerDay)
	}
	units := []rune{cfg.MinuteUnit, cfg.HourUnit, cfg.DayUnit}
	seen := make(map[rune]bool)
	for _, u := range units {
		if !unicode.IsLetter(u) {
			return fmt.Errorf("cost unit %q must be a letter", u)
		}
		l := unicode.ToLower(u)
		if seen[l] {
			return fmt.Errorf("cost unit %q is used twice", u)
		}
		seen[l] = true
	}
	if len(cfg.Flags) == 0 {
		return errors.New("at least one flag is required")
	}
	for _, f := range cfg.Flags {
		r := rune(f)
		if unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune("[]()-.", r) {
			return fmt.Errorf("flag %q collides with the cost or separator syntax", r)
		}
	}
	return nil
}

// Parser is a compiled grammar. It is safe for concurrent use.
type Parser struct {
	cfg     Config
	pattern *regexp.Regexp
}

// New validates cfg and compiles the title grammar for it.
func New(cfg Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid annotation config: %w", err)
	}

	var units []rune
	for _, u := range []rune{cfg.MinuteUnit, cfg.HourUnit, cfg.DayUnit} {
		units = append(units, unicode.ToLower(u), unicode.ToUpper(u))
	}
	flags := make([]rune, len(cfg.Flags))
	for i, f := range cfg.Flags {
		flags[i] = rune(f)
	}

	// 1: cost token, 2: flag characters, 3: content
	expr := fmt.Sprintf(`^[\[(]?(\d+\.?\d*%s)?[)\]]?\s*-?\s*(%s*)\s*(.*)`, charClass(units), charClass(flags))
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling annotation grammar: %w", err)
	}
	return &Parser{cfg: cfg, pattern: pattern}, nil
}

// charClass builds a regexp character class matching exactly runes.
func charClass(runes []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range runes {
		fmt.Fprintf(&b, `\x{%x}`, r)
	}
	b.WriteByte(']')
	return b.String()
}

// Config returns the configuration the parser was built with.
func (p *Parser) Config() Config {
	return p.cfg
}

// Parse decomposes title into its cost, flags and content.
func (p *Parser) Parse(title string) (Annotation, error) {
	m := p.pattern.FindStringSubmatch(title)
	if m == nil {
		return Annotation{}, ErrNoMatch
	}

	cost, err := p.costMinutes(m[1])
	if err != nil {
		return Annotation{}, err
	}

	var flags []Flag
	for _, f := range p.cfg.Flags {
		if strings.ContainsRune(m[2], rune(f)) {
			flags = append(flags, f)
		}
	}

	return Annotation{CostMinutes: cost, Flags: flags, Content: m[3]}, nil
}

// costMinutes converts a cost token such as "1.5h" into whole minutes,
// truncating any fractional minute. An empty token costs nothing and costs
// too large for an int saturate at math.MaxInt.
func (p *Parser) costMinutes(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	split := strings.LastIndexFunc(token, func(r rune) bool {
		return unicode.IsDigit(r) || r == '.'
	}) + 1
	value, err := strconv.ParseFloat(token[:split], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("cost %q: %w", token, err)
	}
	unit, _ := utf8.DecodeRuneInString(token[split:])

	var minutes float64
	switch unicode.ToLower(unit) {
	case unicode.ToLower(p.cfg.MinuteUnit):
		minutes = value
	case unicode.ToLower(p.cfg.HourUnit):
		minutes = value * 60
	case unicode.ToLower(p.cfg.DayUnit):
		minutes = value * p.cfg.HoursPerDay * 60
	default:
		return 0, &UnknownGranularityError{Unit: unit}
	}
	if minutes >= float64(math.MaxInt) {
		return math.MaxInt, nil
	}
	return int(minutes), nil
}

var defaultParser = mustDefault()

func mustDefault() *Parser {
	p, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return p
}

// Default returns the parser for DefaultConfig.
func Default() *Parser {
	return defaultParser
}

// Parse parses title with the default grammar.
func Parse(title string) (Annotation, error) {
	return defaultParser.Parse(title)
}
