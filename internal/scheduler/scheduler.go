package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"PriceSentinel/internal/model"
	"PriceSentinel/internal/notifier"
)

// Runner is the batch the scheduler drives. *pipeline.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context) (*model.RunSummary, error)
	Latest() *model.RunSummary
}

const helpText = "Available commands:\n• /run - price the catalog now\n• /last - show the latest run"

// Scheduler manages the cron job and operator commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier notifier.Notifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner Runner, n notifier.Notifier) *Scheduler {
	if n == nil {
		n = notifier.NewNoopNotifier()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: n,
		Ctx:      ctx,
	}
}

// Register schedules the pricing run. The expression includes a seconds field.
func (s *Scheduler) Register(pricingCron string) error {
	if _, err := s.Cron.AddFunc(pricingCron, s.pricingTask); err != nil {
		return fmt.Errorf("register pricing task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a pricing run immediately (manual trigger / RUN_ON_START) and
// reports the outcome.
func (s *Scheduler) RunNow() (*model.RunSummary, error) {
	log.Println("[INFO] running pricing task")
	summary, err := s.Runner.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] pricing run: %v", err)
		s.trySend(notifier.FormatRunFailure(err))
		return nil, err
	}
	s.trySend(notifier.FormatRunSummary(summary, notifier.DefaultTopChanges))
	return summary, nil
}

func (s *Scheduler) pricingTask() {
	s.RunNow()
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		// RunNow delivers its own report.
		s.RunNow()
		return ""
	case "/last":
		latest := s.Runner.Latest()
		if latest == nil {
			return "No pricing run has completed yet."
		}
		return notifier.FormatRunSummary(latest, notifier.DefaultTopChanges)
	default:
		return helpText
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
