package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"err", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLReturnsInitializedLogger(t *testing.T) {
	base = zerolog.Logger{}
	l := L()
	if l == nil {
		t.Fatal("L() returned nil")
	}
	if l.GetLevel() == zerolog.NoLevel {
		t.Fatal("L() did not initialize the logger")
	}
}

func TestWithComponent(t *testing.T) {
	Init()
	child := With("escrow")
	if child.GetLevel() != L().GetLevel() {
		t.Fatalf("child level %v differs from base %v", child.GetLevel(), L().GetLevel())
	}
}
