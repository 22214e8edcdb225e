package simulated

import (
	"context"
	"time"

	"github.com/nattycheck/api/internal/application"
	"github.com/nattycheck/api/internal/domain/analysis"
)

const defaultDelay = 5 * time.Second

// Analyzer is the development backend. It ignores the photo content, waits a
// fixed duration to simulate processing latency, and returns a canned report.
type Analyzer struct {
	delay time.Duration
	clock application.Clock
}

func New(delay time.Duration, clock application.Clock) *Analyzer {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Analyzer{delay: delay, clock: clock}
}

func (a *Analyzer) Analyze(ctx context.Context, _ analysis.PhotoSet) (*analysis.Report, error) {
	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return cannedReport(a.clock.Now()), nil
}

// cannedReport returns the fixed dev-mode result.
func cannedReport(now time.Time) *analysis.Report {
	return &analysis.Report{
		SchemaVersion: 1,
		CompletedAt:   now.UTC().Format("2006-01-02T15:04:05Z"),
		Confidence:    0.92,
		OverallScore:  83,
		Summary: analysis.Summary{
			UpperBody: 86,
			LowerBody: 79,
			Symmetry:  88,
			Posture:   90,
		},
		Ratios: analysis.Ratios{
			ShoulderToWaist: 1.41,
			QuadToHeight:    0.58,
			ArmToWaist:      0.39,
		},
		Regions: analysis.Regions{
			Upper: []analysis.RegionScore{
				{Name: "Shoulders", Ratio: 1.41, Percent: 90, Tag: "balanced"},
				{Name: "Chest", Ratio: 1.20, Percent: 84, Tag: "strong"},
				{Name: "Lats", Ratio: 1.18, Percent: 68, Tag: "lagging"},
				{Name: "Traps", Ratio: 0.82, Percent: 76, Tag: "balanced"},
				{Name: "Arms", Ratio: 0.39, Percent: 80, Tag: "balanced"},
			},
			Lower: []analysis.RegionScore{
				{Name: "Quads", Ratio: 0.58, Percent: 83, Tag: "balanced"},
				{Name: "Hamstrings", Ratio: 0.46, Percent: 70, Tag: "lagging"},
				{Name: "Glutes", Ratio: 1.05, Percent: 88, Tag: "strong"},
				{Name: "Calves", Ratio: 0.42, Percent: 74, Tag: "balanced"},
			},
		},
		Posture: analysis.Posture{
			Grade:                   "Excellent",
			SpinalAlignmentDeltaDeg: 3,
			ScapularBalance:         "Symmetrical",
		},
		Natty: analysis.Natty{
			Status:     "NATURAL",
			Confidence: 0.80,
		},
		Quality: analysis.Quality{
			Front: analysis.ViewQuality{OK: true, Notes: []string{}},
			Side:  analysis.ViewQuality{OK: true, Notes: []string{}},
			Back:  analysis.ViewQuality{OK: true, Notes: []string{}},
		},
	}
}
