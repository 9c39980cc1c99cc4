package cmd

import (
	"testing"

	"github.com/d4l3k/messagediff"
)

func testFlagSet() *CommandFlagSet {
	return NewFlagSet(
		&CommandFlag{Name: "long", Short: "l", Type: FlagBool},
		&CommandFlag{Name: "all", Short: "a", Type: FlagBool},
		&CommandFlag{Name: "count", Short: "n", Type: FlagInt, Default: int64(0)},
		&CommandFlag{Name: "name", Type: FlagString},
	)
}

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name  string
		raw   []string
		args  []string
		flags map[string]any
	}{
		{
			name:  "positional only",
			raw:   []string{"Utilities", "foo.desktop"},
			args:  []string{"Utilities", "foo.desktop"},
			flags: map[string]any{"count": int64(0)},
		},
		{
			name:  "grouped short bools",
			raw:   []string{"-la", "Utilities"},
			args:  []string{"Utilities"},
			flags: map[string]any{"long": true, "all": true, "count": int64(0)},
		},
		{
			name:  "short with inline value",
			raw:   []string{"-n5"},
			flags: map[string]any{"count": int64(5)},
		},
		{
			name:  "short with separate value",
			raw:   []string{"-n", "3", "Games"},
			args:  []string{"Games"},
			flags: map[string]any{"count": int64(3)},
		},
		{
			name:  "long with equals",
			raw:   []string{"--name=Foo Bar"},
			flags: map[string]any{"name": "Foo Bar", "count": int64(0)},
		},
		{
			name:  "long with separate value",
			raw:   []string{"--count", "7", "--long"},
			flags: map[string]any{"count": int64(7), "long": true},
		},
		{
			name:  "terminator",
			raw:   []string{"--", "-l"},
			args:  []string{"-l"},
			flags: map[string]any{"count": int64(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := NewParser(testFlagSet()).Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if diff, equal := messagediff.PrettyDiff(tt.args, parsed.Args); !equal {
				t.Errorf("Unexpected args:\n%s", diff)
			}
			if diff, equal := messagediff.PrettyDiff(tt.flags, parsed.Flags); !equal {
				t.Errorf("Unexpected flags:\n%s", diff)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := map[string][]string{
		"unknown long":    {"--missing"},
		"unknown short":   {"-x"},
		"missing value":   {"--name"},
		"invalid integer": {"-n", "many"},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewParser(testFlagSet()).Parse(raw); err == nil {
				t.Errorf("Expected error for %v", raw)
			}
		})
	}
}

func TestParser_Required(t *testing.T) {
	set := NewFlagSet(&CommandFlag{Name: "target", Short: "t", Type: FlagString, Required: true})

	if _, err := NewParser(set).Parse(nil); err == nil {
		t.Fatal("Expected error for missing required flag")
	}

	parsed, err := NewParser(set).Parse([]string{"-t", "Games"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.String("target") != "Games" {
		t.Errorf("Expected 'Games', got '%s'", parsed.String("target"))
	}
}

func TestParser_NilFlagSet(t *testing.T) {
	parsed, err := NewParser(nil).Parse([]string{"a", "b"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Arg(1, "") != "b" || parsed.Arg(2, "none") != "none" {
		t.Errorf("Unexpected args %v", parsed.Args)
	}
}
