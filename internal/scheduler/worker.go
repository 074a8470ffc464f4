package scheduler

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one end-to-end analysis run.
type Job interface {
	Run(ctx context.Context) error
}

var scheduleTimeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Worker triggers the job daily at a fixed wall-clock time. The first run
// fires immediately on Start; a failed run is logged and the worker keeps
// waiting for the next trigger. Missed triggers are skipped, not caught up.
type Worker struct {
	job          Job
	cron         *cron.Cron
	cronSpec     string
	scheduleTime string
	location     *time.Location
}

// NewWorker creates a Worker for a 24h HH:MM schedule time in the given
// IANA timezone.
func NewWorker(job Job, scheduleTime, timezone string) (*Worker, error) {
	hour, minute, err := parseScheduleTime(scheduleTime)
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	return &Worker{
		job:          job,
		cron:         cron.New(cron.WithLocation(location)),
		cronSpec:     buildCronSpec(hour, minute),
		scheduleTime: scheduleTime,
		location:     location,
	}, nil
}

// Start runs the job once right away, then schedules the daily trigger.
func (w *Worker) Start() error {
	log.Println("[Worker] Running initial analysis now...")
	go w.runJob()

	if _, err := w.cron.AddFunc(w.cronSpec, w.runJob); err != nil {
		return fmt.Errorf("failed to schedule job: %w", err)
	}
	w.cron.Start()
	log.Printf("[Worker] Scheduled daily analysis at %s (%s)", w.scheduleTime, w.location)
	return nil
}

// Stop halts the cron loop
func (w *Worker) Stop() {
	w.cron.Stop()
	log.Println("[Worker] Stopped")
}

func (w *Worker) runJob() {
	log.Println("[Worker] Running analysis job...")
	if err := w.job.Run(context.Background()); err != nil {
		log.Printf("[Worker] Run failed: %v", err)
		return
	}
	log.Println("[Worker] Run succeeded")
}

// parseScheduleTime validates a 24h HH:MM string
func parseScheduleTime(s string) (hour, minute int, err error) {
	m := scheduleTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid schedule time %q, expected HH:MM (24h)", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

func buildCronSpec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * *", minute, hour)
}
