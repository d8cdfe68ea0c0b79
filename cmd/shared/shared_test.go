package shared

import (
	"strings"
	"testing"
)

func TestGetRunDescription(t *testing.T) {
	t.Parallel()

	desc := GetRunDescription()

	if desc == "" {
		t.Error("GetRunDescription() should not return empty string")
	}

	if !strings.Contains(desc, "PTY") {
		t.Error("description should mention the PTY")
	}

	if !strings.Contains(desc, "scrollback") {
		t.Error("description should mention scrollback")
	}

	if !strings.Contains(desc, "clipboard") {
		t.Error("description should mention the clipboard")
	}
}

func TestGetCommonFlags(t *testing.T) {
	t.Parallel()

	flags := GetCommonFlags()

	if flags == nil {
		t.Fatal("GetCommonFlags() returned nil")
	}

	if len(flags) == 0 {
		t.Error("GetCommonFlags() should return at least one flag")
	}

	// Check for expected flags
	flagNames := make(map[string]bool)
	for _, flag := range flags {
		if names := flag.Names(); len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	expectedFlags := []string{ConfigFlag, VerboseFlag}
	for _, name := range expectedFlags {
		if !flagNames[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}

func TestGetSessionFlags(t *testing.T) {
	t.Parallel()

	flags := GetSessionFlags()

	if flags == nil {
		t.Fatal("GetSessionFlags() returned nil")
	}

	if len(flags) == 0 {
		t.Error("GetSessionFlags() should return at least one flag")
	}

	// Check for expected flags
	flagNames := make(map[string]bool)
	for _, flag := range flags {
		if names := flag.Names(); len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	expectedFlags := []string{ShellFlag, DirFlag, CommandFlag, SizeFlag, HistoryFlag, LogFileFlag}
	for _, name := range expectedFlags {
		if !flagNames[name] {
			t.Errorf("expected flag %q not found", name)
		}
	}
}
