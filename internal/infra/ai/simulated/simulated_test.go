package simulated_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nattycheck/api/internal/application"
	"github.com/nattycheck/api/internal/domain/analysis"
	"github.com/nattycheck/api/internal/infra/ai/simulated"
)

func TestAnalyze_ReturnsSchemaValidReport(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := simulated.New(10*time.Millisecond, application.FixedClock{T: at})

	r, err := a.Analyze(context.Background(), analysis.PhotoSet{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if err := r.Validate(); err != nil {
		t.Fatalf("canned report does not validate: %v", err)
	}
	if r.OverallScore < 0 || r.OverallScore > 100 {
		t.Fatalf("overallScore out of range: %d", r.OverallScore)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", r.Confidence)
	}
	if r.CompletedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("expected completedAt from the clock, got %q", r.CompletedAt)
	}
	if len(r.Regions.Upper) == 0 || len(r.Regions.Lower) == 0 {
		t.Fatalf("expected region breakdowns, got %+v", r.Regions)
	}
}

func TestAnalyze_WaitsForDelay(t *testing.T) {
	a := simulated.New(50*time.Millisecond, application.SystemClock{})

	start := time.Now()
	if _, err := a.Analyze(context.Background(), analysis.PhotoSet{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("returned after %v, before the simulated delay elapsed", elapsed)
	}
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	a := simulated.New(5*time.Second, application.SystemClock{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := a.Analyze(ctx, analysis.PhotoSet{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("cancellation took %v, should be immediate", elapsed)
	}
}
