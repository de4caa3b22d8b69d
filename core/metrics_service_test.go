package core

import (
	"context"
	"testing"
)

func TestMetricsService_Counters(t *testing.T) {
	_, client := newTestRedis(t)
	metrics := NewMetricsService(client)
	ctx := context.Background()

	// Fresh instance: all counters read zero.
	snapshot, err := metrics.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if snapshot != (AuthMetrics{}) {
		t.Fatalf("expected zero counters, got %+v", snapshot)
	}

	metrics.LoginSucceeded(ctx)
	metrics.LoginSucceeded(ctx)
	metrics.TokenIssued(ctx)
	metrics.LoginFailed(ctx)
	metrics.LoginRateLimited(ctx)

	snapshot, err = metrics.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	want := AuthMetrics{LoginsOK: 2, LoginsFailed: 1, TokensIssued: 1, LoginsRateLimited: 1}
	if snapshot != want {
		t.Fatalf("counter mismatch: got %+v want %+v", snapshot, want)
	}
}

func TestMetricsService_RecordingIsBestEffort(t *testing.T) {
	t.Parallel()

	// Recording without a backing client must be a no-op, not a panic.
	metrics := NewMetricsService(nil)
	metrics.LoginSucceeded(context.Background())
	metrics.LoginFailed(context.Background())
}
