// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package log

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestLogOptionalTime(t *testing.T) {
	reviewed := time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    *time.Time
		expected slog.Value
	}{
		{
			name:     "nil pointer returns nil value",
			input:    nil,
			expected: slog.AnyValue(nil),
		},
		{
			name:     "set timestamp returns time value",
			input:    &reviewed,
			expected: slog.TimeValue(reviewed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LogOptionalTime(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("LogOptionalTime(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAppendCtx(t *testing.T) {
	ctx := AppendCtx(context.Background(), slog.String("request_uid", "req-1"))
	ctx = AppendCtx(ctx, slog.String("actor", "u1"))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attrs stored in context")
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "request_uid" || attrs[1].Key != "actor" {
		t.Errorf("unexpected attr keys: %v", attrs)
	}
}

func TestAppendCtxNilParent(t *testing.T) {
	//nolint:staticcheck // exercising the nil-parent fallback on purpose
	ctx := AppendCtx(nil, slog.String("key", "value"))
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok || len(attrs) != 1 {
		t.Fatalf("expected 1 attr, got %v", attrs)
	}
}
