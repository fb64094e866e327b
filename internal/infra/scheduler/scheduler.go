package scheduler

import (
	"context"
	"fmt"
	"time"

	"course_activity_report/internal/domain/run"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Runner executes one report run; implemented by app.ReportService.
type Runner interface {
	Run(ctx context.Context) (*run.Run, error)
}

type ReportScheduler struct {
	cronEngine *cron.Cron
	runner     Runner
	logger     *logrus.Entry
	cronSpec   string
	jobTimeout time.Duration
}

func NewReportScheduler(
	runner Runner,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 6 * * 1" (06:00 every Monday)
	jobTimeout time.Duration, // Zero means no deadline
) *ReportScheduler {
	return &ReportScheduler{
		// Overlapping runs would race on the same output file.
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.SkipIfStillRunning(newCronLogger(logger))),
		),
		runner:     runner,
		logger:     logger,
		cronSpec:   cronSpec,
		jobTimeout: jobTimeout,
	}
}

func (s *ReportScheduler) Start() error {
	s.logger.WithField("cron_spec", s.cronSpec).Info("Starting report scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for course activity report.")
		s.runJob()
	})
	if err != nil {
		return fmt.Errorf("could not add report cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	for _, entry := range s.cronEngine.Entries() {
		s.logger.WithField("next_run", entry.Next.Format(time.RFC3339)).Info("Report scheduler started.")
	}
	return nil
}

func (s *ReportScheduler) runJob() {
	ctx := context.Background()
	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	r, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled report run aborted.")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"run_id": r.ID.String(),
		"state":  r.State,
	}).Info("Scheduled report run finished.")
}

func (s *ReportScheduler) Stop() {
	s.logger.Info("Stopping report scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job to complete.
	<-ctx.Done()
	s.logger.Info("Report scheduler gracefully stopped.")
}
