package health

import (
	"context"
	"errors"
	"testing"
)

func TestCheckAllHealthy(t *testing.T) {
	svc := New(
		&mockPinger{pingFn: func(context.Context) error { return nil }},
		&mockChecker{checkFn: func(context.Context) error { return nil }},
	)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %v, want %v", report.Status, Healthy)
	}
	if report.Checks["database"] != CheckOK || report.Checks["embedding"] != CheckOK {
		t.Errorf("Checks = %v, want both ok", report.Checks)
	}
}

func TestCheckStoreFailureIsUnhealthy(t *testing.T) {
	svc := New(
		&mockPinger{pingFn: func(context.Context) error { return errors.New("connection refused") }},
		&mockChecker{checkFn: func(context.Context) error { return nil }},
	)

	report := svc.Check(context.Background())
	if report.Status != Unhealthy {
		t.Errorf("Status = %v, want %v", report.Status, Unhealthy)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("database check = %v, want error", report.Checks["database"])
	}
}

func TestCheckEmbeddingFailureOnlyDegrades(t *testing.T) {
	svc := New(
		&mockPinger{pingFn: func(context.Context) error { return nil }},
		&mockChecker{checkFn: func(context.Context) error { return errors.New("401") }},
	)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %v, want %v, search still serves via the deterministic path", report.Status, Degraded)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %v, want error", report.Checks["embedding"])
	}
}

func TestCheckStoreFailureDominatesEmbedding(t *testing.T) {
	svc := New(
		&mockPinger{pingFn: func(context.Context) error { return errors.New("down") }},
		&mockChecker{checkFn: func(context.Context) error { return errors.New("down") }},
	)

	if report := svc.Check(context.Background()); report.Status != Unhealthy {
		t.Errorf("Status = %v, want %v", report.Status, Unhealthy)
	}
}

func TestCheckWithoutEmbeddingChecker(t *testing.T) {
	svc := New(&mockPinger{pingFn: func(context.Context) error { return nil }}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %v, want %v", report.Status, Healthy)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check reported without a configured checker")
	}
}

// --- Mocks ---

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.pingFn(ctx) }

type mockChecker struct {
	checkFn func(ctx context.Context) error
}

func (m *mockChecker) HealthCheck(ctx context.Context) error { return m.checkFn(ctx) }
