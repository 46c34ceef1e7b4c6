package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arcademedia/internal/logging"
)

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "matching").Info("matched", logging.String(logging.FieldCanonicalID, "TC5"))

	line := buf.String()
	if !strings.Contains(line, "INFO matching: matched") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "canonical_id=TC5") {
		t.Fatalf("expected canonical_id field, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not be repeated as a field, got %q", line)
	}
}

func TestJSONLoggerKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithJob(logging.WithRunID(context.Background(), "run-1"), "covers")
	logging.WithContext(ctx, logger).Warn("root missing")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	for key, want := range map[string]string{"level": "warn", "msg": "root missing", "run_id": "run-1", "job": "covers"} {
		if payload[key] != want {
			t.Fatalf("payload[%q] = %v, want %q", key, payload[key], want)
		}
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "arcademedia.log")
	logger, err := logging.New(logging.Options{Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello file")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello file") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestWithContextWithoutFields(t *testing.T) {
	logger := logging.NewNop()
	if got := logging.WithContext(context.Background(), logger); got != logger {
		t.Fatal("expected logger to be returned unchanged")
	}
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("expected nop logger for nil input")
	}
}

func TestConsoleLoggerLiftsJobAndHidesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithJob(logging.WithRunID(context.Background(), "run-1"), "covers")
	logging.WithContext(ctx, logging.NewComponentLogger(logger, "organizer")).
		Info("asset organized", logging.String(logging.FieldDestination, "Media/Covers/TC5.jpg"))

	line := buf.String()
	if !strings.Contains(line, "INFO organizer: [covers] asset organized destination=Media/Covers/TC5.jpg") {
		t.Fatalf("unexpected console line %q", line)
	}
	if strings.Contains(line, "run_id") || strings.Contains(line, "job=") {
		t.Fatalf("run id and job must not appear as fields, got %q", line)
	}
}

func TestWriterAndOutputPathsBothReceive(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "arcademedia.log")
	logger, err := logging.New(logging.Options{Level: "info", Writer: &buf, OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("both sinks")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(buf.String(), "both sinks") || !strings.Contains(string(content), "both sinks") {
		t.Fatalf("expected line in writer and file, got %q / %q", buf.String(), content)
	}
}
