package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nattycheck/api/internal/application"
	"github.com/nattycheck/api/internal/domain/analysis"
	domain "github.com/nattycheck/api/internal/domain/jobs"
	"github.com/nattycheck/api/internal/middleware"
)

// Service implements use-cases untuk Job
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	store    domain.Store
	analyzer analysis.Analyzer
	clock    application.Clock

	timeout time.Duration
	sem     chan struct{}
}

// Options tune the background pipeline. Zero values mean: no per-analysis
// deadline, no bound on concurrently running analyses (the source behavior).
type Options struct {
	// Timeout caps one provider call. New decision, not source behavior;
	// off by default.
	Timeout time.Duration
	// MaxConcurrent bounds in-flight pipelines so a burst of submits can't
	// open unbounded provider connections.
	MaxConcurrent int
}

func NewService(store domain.Store, analyzer analysis.Analyzer, clock application.Clock, opts Options) *Service {
	s := &Service{
		store:    store,
		analyzer: analyzer,
		clock:    clock,
		timeout:  opts.Timeout,
	}
	if opts.MaxConcurrent > 0 {
		s.sem = make(chan struct{}, opts.MaxConcurrent)
	}
	return s
}

//
// ==== USE CASES ====
//

// Submit creates a queued job and schedules exactly one background analysis
// for it. It returns as soon as the record exists; pollers observe progress
// through the job record only.
func (s *Service) Submit(ctx context.Context, photos analysis.PhotoSet) (domain.JobID, error) {
	id := domain.JobID(uuid.New().String())

	job := &domain.Job{
		ID:        id,
		Status:    domain.StatusQueued,
		Message:   "Queued",
		Results:   nil,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Create(ctx, job); err != nil {
		return "", err
	}

	middleware.IncrementAnalyses()
	go s.runPipeline(id, photos)

	return id, nil
}

// Poll returns the current snapshot of a job. Non-blocking; the caller sees
// whichever state is current.
func (s *Service) Poll(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	return s.store.Get(ctx, id)
}

// runPipeline jalanin analysis dengan context.Background()
// supaya gak kena context canceled saat client disconnect
func (s *Service) runPipeline(id domain.JobID, photos analysis.PhotoSet) {
	if s.sem != nil {
		s.sem <- struct{}{}
		defer func() { <-s.sem }()
	}
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	defer func() {
		// a backend panic fails the one job, never the process
		if rec := recover(); rec != nil {
			log.Printf("[pipeline] job_id=%s panic=%v", id, rec)
			s.fail(id, "internal error")
		}
	}()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	_ = s.store.Update(ctx, id, func(j *domain.Job) {
		j.Status = domain.StatusProcessing
		j.Message = "Analyzing…"
	})

	start := time.Now()
	report, err := s.analyzer.Analyze(ctx, photos)
	if err != nil {
		log.Printf("[pipeline] job_id=%s status=failed duration_ms=%d error=%v",
			id, time.Since(start).Milliseconds(), err)
		s.fail(id, err.Error())
		return
	}

	_ = s.store.Update(context.Background(), id, func(j *domain.Job) {
		j.Status = domain.StatusDone
		j.Message = "Complete"
		j.Results = report
	})
	log.Printf("[pipeline] job_id=%s status=done duration_ms=%d",
		id, time.Since(start).Milliseconds())
}

func (s *Service) fail(id domain.JobID, msg string) {
	middleware.IncrementAnalysesFailed()
	_ = s.store.Update(context.Background(), id, func(j *domain.Job) {
		j.Status = domain.StatusFailed
		j.Message = msg
	})
}
