package reveal

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNopHandlerDiscards(t *testing.T) {
	var h slog.Handler = nopHandler{}
	if h.Enabled(context.Background(), slog.LevelError) {
		t.Error("nopHandler enabled at error level")
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("session", "x")}).WithGroup("g").(nopHandler); !ok {
		t.Error("derived handler is not a nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Default logger must be disabled at all levels.
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	SetLogger(custom)

	got := Logger()
	if got != custom {
		t.Error("Logger() did not return the custom logger set via SetLogger")
	}

	// Verify output is captured.
	got.Info("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected log output to contain 'test message', got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	// First set a real logger.
	SetLogger(slog.Default())

	// Then set nil to restore silence.
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("SetLogger(nil) should set nop logger, not nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestSessionLogsCarrySessionID(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	s := NewSession(Viewport{W: 64, H: 36}, nil, WithSeed(1))
	s.Start(time.Unix(0, 0))

	out := buf.String()
	if !strings.Contains(out, "session="+s.ID().String()) {
		t.Errorf("expected session id in log output, got: %s", out)
	}
	// A missing background is a resource fallback and must be reported.
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("expected a warning for the missing background, got: %s", out)
	}
}

func TestSetLoggerWhileTicking(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	s := NewSession(Viewport{W: 48, H: 27}, nil, WithSeed(3))
	now := time.Unix(0, 0)
	s.Start(now)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			SetLogger(slog.Default())
			SetLogger(nil)
		}
	}()
	for i := range 50 {
		s.Tick(now.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	wg.Wait()
}
