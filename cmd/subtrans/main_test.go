package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cliTestSRT = `1
00:00:01,000 --> 00:00:02,500
Hello there

2
00:00:03,000 --> 00:00:04,000
General greeting
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTestSRT(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.srt")
	if err := os.WriteFile(path, []byte(cliTestSRT), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, name := range []string{"translate", "analyze", "preview", "status", "watch", "serve"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q", name)
		}
	}
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runCLI(t, "analyze", writeTestSRT(t), "--detailed")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "Entries") || !strings.Contains(out, "2") {
		t.Errorf("unexpected analyze output:\n%s", out)
	}
	if !strings.Contains(out, "00:00:01,000") {
		t.Errorf("analyze output missing first timestamp:\n%s", out)
	}
}

func TestPreviewCommand(t *testing.T) {
	out, err := runCLI(t, "preview", writeTestSRT(t), "-n", "1")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "2 entries total") {
		t.Errorf("preview output missing total:\n%s", out)
	}
	if !strings.Contains(out, "Hello there") || !strings.Contains(out, "General greeting") {
		t.Errorf("preview output missing entries:\n%s", out)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := runCLI(t, "analyze", filepath.Join(t.TempDir(), "missing.srt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTranslateStdinFallsBackWhenEndpointDown(t *testing.T) {
	t.Setenv("LLM_API_URL", "http://127.0.0.1:1/v1")
	t.Setenv("RATE_LIMIT_DELAY", "0")
	t.Setenv("LLM_TIMEOUT", "1")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(cliTestSRT))
	cmd.SetArgs([]string{"translate", "-"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("translate -: %v", err)
	}
	// unreachable endpoint degrades every entry to its original text
	if !strings.Contains(out.String(), "Hello there") || !strings.Contains(out.String(), "General greeting") {
		t.Errorf("stdin output missing original text:\n%s", out.String())
	}
}

func TestWatchRequiresDirs(t *testing.T) {
	t.Setenv("WATCH_DIRS", "")
	_, err := runCLI(t, "watch", "--once")
	if err == nil || !strings.Contains(err.Error(), "WATCH_DIRS") {
		t.Fatalf("expected watch dirs error, got %v", err)
	}
}
