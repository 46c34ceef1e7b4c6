package main

import (
	"strings"
	"testing"

	"arcademedia/internal/preflight"
)

func TestRenderStatusLinePlain(t *testing.T) {
	got := renderStatusLine("Job covers root", statusError, "missing", false)
	if !strings.Contains(got, "Job covers root:") || !strings.HasSuffix(got, "[ERROR] missing") {
		t.Fatalf("unexpected line %q", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("plain line must not contain ANSI codes: %q", got)
	}
}

func TestRenderStatusLineColor(t *testing.T) {
	got := renderStatusLine("Profiles", statusOK, "ok", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestPreflightLinesKinds(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "a", Passed: true, Detail: "fine"},
		{Name: "b", Optional: true, Detail: "absent"},
		{Name: "c", Detail: "broken"},
	}, false)
	if len(lines) != 5 {
		t.Fatalf("expected header, rule and 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"[OK] fine", "[WARN] absent", "[ERROR] broken"} {
		if !strings.HasSuffix(lines[i+2], want) {
			t.Fatalf("line %d = %q, want suffix %q", i+2, lines[i+2], want)
		}
	}
}
