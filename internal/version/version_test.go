package version

import (
	"strings"
	"testing"
)

func TestGetAlwaysPopulated(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version is empty, want a release or dev identifier")
	}
	if info.Commit == "" {
		t.Error("Commit is empty, want a revision or \"unknown\"")
	}
}

func TestStringIncludesVersionAndCommit(t *testing.T) {
	info := Get()
	s := String()
	if !strings.Contains(s, info.Version) {
		t.Errorf("String() = %q, want it to contain version %q", s, info.Version)
	}
	if !strings.Contains(s, "commit:") {
		t.Errorf("String() = %q, want it to contain commit details", s)
	}
	if Short() != info.Version {
		t.Errorf("Short() = %q, want %q", Short(), info.Version)
	}
}

func TestShortRevision(t *testing.T) {
	tests := []struct {
		name string
		rev  string
		want string
	}{
		{name: "long revision abbreviated", rev: "0123456789abcdef", want: "0123456"},
		{name: "short revision unchanged", rev: "abc12", want: "abc12"},
		{name: "empty unchanged", rev: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortRevision(tt.rev); got != tt.want {
				t.Errorf("shortRevision(%q) = %q, want %q", tt.rev, got, tt.want)
			}
		})
	}
}
