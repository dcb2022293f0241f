package sweep

import (
	"context"
	"log"
	"time"

	"roomly/internal/shared/config"
)

// JobProcessor runs the sweep on a fixed interval until stopped.
type JobProcessor struct {
	service Service
	cfg     config.SweepConfig
	done    chan struct{}
}

func NewJobProcessor(service Service, cfg config.SweepConfig) *JobProcessor {
	return &JobProcessor{
		service: service,
		cfg:     cfg,
		done:    make(chan struct{}),
	}
}

// Start launches the sweep loop in the background.
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Printf("Starting status sweep with %v interval", jp.cfg.Interval)

	if jp.cfg.RunOnStartup {
		jp.run(ctx)
	}

	go jp.loop(ctx)
}

// Stop halts the sweep loop. Safe to call once.
func (jp *JobProcessor) Stop() {
	close(jp.done)
	log.Println("Status sweep stopped")
}

func (jp *JobProcessor) loop(ctx context.Context) {
	ticker := time.NewTicker(jp.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			jp.run(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) run(ctx context.Context) {
	if _, err := jp.service.RunOnce(ctx); err != nil {
		log.Printf("Error running status sweep: %v", err)
	}
}
