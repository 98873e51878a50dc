package job

import (
	"context"
	"log"
	"time"

	"btcpulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Runner is the cycle pair the job drives (pulse.Service in production).
type Runner interface {
	RunCycle(ctx context.Context, now time.Time) (domain.RunResult, error)
	RunNews(ctx context.Context, now time.Time) (domain.NewsRunResult, error)
}

// PulseJob re-runs the scoring and news cycles on a fixed interval. The
// first run happens immediately; cron triggering the one-shot binary remains
// the primary deployment mode.
type PulseJob struct {
	tracer       trace.Tracer
	runner       Runner
	pollInterval time.Duration
	withNews     bool
}

func NewPulseJob(tracer trace.Tracer, runner Runner, pollInterval time.Duration, withNews bool) *PulseJob {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Minute
	}
	return &PulseJob{tracer: tracer, runner: runner, pollInterval: pollInterval, withNews: withNews}
}

func (j *PulseJob) Start(ctx context.Context) {
	if j.runner == nil {
		log.Println("Pulse job disabled: no runner")
		<-ctx.Done()
		return
	}

	j.runOnce(ctx)
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *PulseJob) runOnce(ctx context.Context) {
	ctx, span := j.tracer.Start(ctx, "pulse-job.run-once")
	defer span.End()

	now := time.Now()
	result, err := j.runner.RunCycle(ctx, now)
	if err != nil {
		log.Printf("Pulse cycle error: %v", err)
	} else {
		log.Printf("Pulse cycle done: label=%s net=%d ok=%d fail=%d llm=%t",
			result.Label, result.NetScore, result.IndicatorsOK, result.IndicatorsFail, result.StoryFromLLM)
		for _, e := range result.Errors {
			log.Printf("Pulse cycle source error: %s", e)
		}
	}

	if !j.withNews {
		return
	}
	newsResult, err := j.runner.RunNews(ctx, now)
	if err != nil {
		log.Printf("News cycle error: %v", err)
		return
	}
	log.Printf("News cycle done: fetched=%d annotated=%d llm=%t",
		newsResult.ItemsFetched, newsResult.ItemsAnnotated, newsResult.LLMUsed)
	for _, e := range newsResult.Errors {
		log.Printf("News cycle source error: %s", e)
	}
}
