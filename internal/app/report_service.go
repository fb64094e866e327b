// internal/app/report_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_activity_report/internal/domain/activity"
	"course_activity_report/internal/domain/report"
	"course_activity_report/internal/domain/run"
	"course_activity_report/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// ReportService runs the fetch, write and publish pipeline once per call.
type ReportService struct {
	cfg       *config.AppConfig
	fetcher   activity.Fetcher
	writer    report.Writer
	publisher report.Publisher
	runRepo   run.Repository // Optional
	notifier  *RunNotifier   // Optional
	logger    *logrus.Entry
	now       func() time.Time
}

func NewReportService(
	cfg *config.AppConfig,
	fetcher activity.Fetcher,
	writer report.Writer,
	publisher report.Publisher,
	runRepo run.Repository,
	notifier *RunNotifier,
	logger *logrus.Entry,
) *ReportService {
	return &ReportService{
		cfg:       cfg,
		fetcher:   fetcher,
		writer:    writer,
		publisher: publisher,
		runRepo:   runRepo,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one report run. The returned error is non-nil only for
// aborted runs; a failed upload ends in run.StatePublishFailed with the
// local report left in place.
func (s *ReportService) Run(ctx context.Context) (*run.Run, error) {
	r := run.New(s.now())
	logCtx := s.logger.WithField("run_id", r.ID.String())
	logCtx.Info("Starting report run")

	if missing := s.cfg.Credentials.Missing(); len(missing) > 0 {
		return s.abort(ctx, r, logCtx, &ConfigurationError{Missing: missing})
	}

	rs, err := s.fetcher.Fetch(ctx, s.cfg.Credentials)
	if err != nil {
		if errors.Is(err, activity.ErrMalformedResponse) {
			return s.abort(ctx, r, logCtx, fmt.Errorf("%w: %w", ErrParse, err))
		}
		return s.abort(ctx, r, logCtx, fmt.Errorf("%w: %w", ErrFetch, err))
	}
	if rs == nil {
		return s.abort(ctx, r, logCtx, fmt.Errorf("%w: no data returned", ErrFetch))
	}
	r.RecordCount = rs.Len()
	r.Advance(run.StateFetched)
	if rs.NextPage != "" {
		logCtx.WithFields(logrus.Fields{
			"record_count": rs.Len(),
			"total":        rs.Total,
		}).Warn("Activity endpoint has further pages; only the first page is reported")
	}

	rows := report.BuildRows(rs, s.now())
	out, err := s.writer.Write(rows)
	if err != nil {
		return s.abort(ctx, r, logCtx, fmt.Errorf("%w: %w", ErrWrite, err))
	}
	r.OutputFile.String, r.OutputFile.Valid = out, true
	r.Advance(run.StateWritten)
	logCtx.WithFields(logrus.Fields{
		"output_file":  out,
		"record_count": len(rows),
	}).Info("Report written")

	remote, err := s.publisher.Publish(ctx, out, s.cfg.Transfer)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrPublish, err)
		logCtx.WithError(err).Error("Error uploading report; local file kept")
		s.finish(ctx, r, logCtx, run.StatePublishFailed, err)
		return r, nil
	}
	r.RemotePath.String, r.RemotePath.Valid = remote, true

	s.finish(ctx, r, logCtx, run.StatePublished, nil)
	logCtx.WithField("remote_path", remote).Info("Report run completed")
	return r, nil
}

func (s *ReportService) abort(ctx context.Context, r *run.Run, logCtx *logrus.Entry, err error) (*run.Run, error) {
	logCtx.WithError(err).WithField("reached", r.State).Error("Report run aborted")
	s.finish(ctx, r, logCtx, run.StateAborted, err)
	return r, err
}

// finish stores and announces the terminal state. Failures here are logged
// and do not change the run's outcome.
func (s *ReportService) finish(ctx context.Context, r *run.Run, logCtx *logrus.Entry, state run.State, err error) {
	r.Finish(state, s.now(), err)

	if s.runRepo != nil {
		if saveErr := s.runRepo.Save(ctx, r); saveErr != nil {
			logCtx.WithError(saveErr).Warn("Could not record report run")
		}
	}
	if s.notifier != nil {
		if notifyErr := s.notifier.Notify(r); notifyErr != nil {
			logCtx.WithError(notifyErr).Warn("Could not send run notification")
		}
	}
}

// History returns the most recent recorded runs.
func (s *ReportService) History(ctx context.Context, limit int) ([]*run.Run, error) {
	if s.runRepo == nil {
		return nil, errors.New("run history is not configured (DATABASE_URL not set)")
	}
	return s.runRepo.ListRecent(ctx, limit)
}
