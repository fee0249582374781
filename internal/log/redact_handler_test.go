package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// TestRedactHandlerMasksSensitiveKeys tests key-based masking.
func TestRedactHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "cookie header", key: "cookie", value: "session=abc123"},
		{name: "authorization header", key: "Authorization", value: "Bearer tok"},
		{name: "api key", key: "X-Api-Key", value: "k-12345"},
		{name: "password", key: "password", value: "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

			logger.Info("fetching page", tt.key, tt.value)

			out := buf.String()
			if strings.Contains(out, tt.value) {
				t.Errorf("sensitive value leaked into log output: %s", out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("expected mask value in output, got: %s", out)
			}
		})
	}
}

// TestRedactHandlerMasksSensitiveValues tests value-pattern masking.
func TestRedactHandlerMasksSensitiveValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("request header", "header", "Bearer eyJhbGciOiJIUzI1NiJ9.payload")

	out := buf.String()
	if strings.Contains(out, "eyJhbGciOiJIUzI1NiJ9") {
		t.Errorf("bearer token leaked into log output: %s", out)
	}
}

// TestRedactHandlerPassesThroughSafeAttrs tests that ordinary attributes survive.
func TestRedactHandlerPassesThroughSafeAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("fetched page", "url", "https://docs.example.com/guide", "status", 200)

	out := buf.String()
	if !strings.Contains(out, "https://docs.example.com/guide") {
		t.Errorf("expected URL in output, got: %s", out)
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("expected status in output, got: %s", out)
	}
}

// TestRedactHandlerWithAttrs tests masking of pre-bound attributes.
func TestRedactHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	bound := logger.With("cookie", "session=secret")
	bound.Info("crawl started")

	out := buf.String()
	if strings.Contains(out, "session=secret") {
		t.Errorf("bound cookie leaked into log output: %s", out)
	}
}

// TestRedactHandlerGroups tests masking inside attribute groups.
func TestRedactHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewRedactHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("request",
		slog.Group("headers",
			slog.String("cookie", "session=grouped"),
			slog.String("accept", "text/html"),
		),
	)

	out := buf.String()
	if strings.Contains(out, "session=grouped") {
		t.Errorf("grouped cookie leaked into log output: %s", out)
	}
	if !strings.Contains(out, "text/html") {
		t.Errorf("expected safe grouped attr in output, got: %s", out)
	}
}

// TestNewLogger tests the level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("should not appear")
		logger.Warn("should appear")

		out := buf.String()
		if strings.Contains(out, "should not appear") {
			t.Errorf("debug record leaked at default level: %s", out)
		}
		if !strings.Contains(out, "should appear") {
			t.Errorf("expected warn record, got: %s", out)
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("expected debug to be enabled in verbose mode")
		}
	})
}
