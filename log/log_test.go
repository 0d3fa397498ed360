package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// logError stands in for errors that carry their own structured fields.
type logError struct{}

func (logError) Error() string { return "parse error" }

func (logError) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", "parse error"), slog.Int("line", 2))
}

func TestLogger_Make_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("expected level %s, got %s", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected format %s, got %s", DefaultFormat, logger.Format())
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("unexpected defaults: caller=%v pretty=%v", logger.caller, logger.pretty)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		logged []string
	}{
		{"trace", LevelTrace, []string{"trace", "debug", "info", "warn", "error"}},
		{"info", LevelInfo, []string{"info", "warn", "error"}},
		{"error", LevelError, []string{"error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.level), WithPretty(false), WithTimeLayout("none"))
			logger.Trace("trace")
			logger.Debug("debug")
			logger.Info("info")
			logger.Warn("warn")
			logger.Error("error")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.logged) {
				t.Fatalf("expected %d lines, got %d:\n%s", len(tt.logged), len(lines), buf.String())
			}

			for i, msg := range tt.logged {
				if !strings.Contains(lines[i], "msg="+msg) {
					t.Errorf("line %d: expected msg=%s, got %s", i, msg, lines[i])
				}
			}
		})
	}
}

func TestLogger_Format_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger.Warn("unbound name", slog.String("name", "x"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}

	if entry["msg"] != "unbound name" || entry["name"] != "x" || entry["level"] != "WARN" {
		t.Errorf("unexpected entry: %v", entry)
	}

	if _, ok := entry["time"]; !ok {
		t.Errorf("expected a timestamp by default")
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Warn("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller to be this file, got %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithPretty(false)).Warn("here")

	if strings.Contains(buf.String(), "source") {
		t.Errorf("caller included when disabled: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	base.With(slog.String("component", "lig")).Warn("message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if entry["component"] != "lig" {
		t.Errorf("expected component=lig, got %v", entry)
	}

	buf.Reset()
	base.Warn("message")

	if strings.Contains(buf.String(), "component") {
		t.Errorf("With modified the original logger: %s", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Errorf("expected levels error/debug, got %s/%s", base.Level(), wrapped.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("wrapped logger did not keep the output writer")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("x")
	l.TraceContext(t.Context(), "x")
	l.Info("x")
	l.Error("x")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Errorf("expected With on the zero value to stay a no-op")
	}

	if l.Level() != DefaultLevel {
		t.Errorf("expected default level, got %s", l.Level())
	}
}

func TestLogger_Pretty(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
		logger.Error("failed", slog.Any("error", logError{}), slog.Bool("cached", true))

		want := "level=ERROR msg=failed error.error=parse error error.line=2 cached=true\n"
		if got := buf.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
			With(slog.Group("doc", slog.Int("statements", 5)))
		logger.Warn("read")

		want := "{\n  level: WARN,\n  msg: read,\n  doc.statements: 5\n}\n"
		if got := buf.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithTimeLayout("none"))
		logger.Error("failed", slog.Any("cause", errors.New("boom")))

		if !strings.Contains(buf.String(), "cause=boom") {
			t.Errorf("expected cause=boom, got %q", buf.String())
		}
	})
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf syncBuffer

	logger := Make(&buf, WithLevel(LevelDebug))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			logger.Debug("message", slog.Int("id", i))
			_ = logger.With(slog.Int("worker", i)).Level()
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 50 {
		t.Errorf("expected 50 lines, got %d", n)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithLevel(LevelInfo), WithPretty(false))

	for b.Loop() {
		logger.Info("benchmark message", slog.Int("n", 1))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithLevel(LevelInfo))

	for b.Loop() {
		logger.Trace("discarded", slog.Int("n", 1))
	}
}
