package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	// At 00:00:05 hotel time every day
	dayRolloverSpec = "5 0 0 * * *"
	// At 06:00 hotel time every day
	frontDeskDigestSpec = "0 0 6 * * *"
)

// CacheInvalidator drops cached API responses
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CronService manages scheduled background jobs. Schedules run in the
// hotel's time zone so "midnight" is the hotel's midnight.
type CronService struct {
	cron           *cron.Cron
	bookingService *BookingService
	cache          CacheInvalidator
	logger         logrus.FieldLogger
}

// NewCronService creates a new CronService. cache may be nil.
func NewCronService(bookingService *BookingService, cache CacheInvalidator, logger logrus.FieldLogger) *CronService {
	c := cron.New(cron.WithSeconds(), cron.WithLocation(bookingService.location))

	return &CronService{
		cron:           c,
		bookingService: bookingService,
		cache:          cache,
		logger:         logger.WithField("component", "cron"),
	}
}

// Start schedules all jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(dayRolloverSpec, s.dayRolloverJob); err != nil {
		return fmt.Errorf("failed to schedule day rollover job: %w", err)
	}
	if _, err := s.cron.AddFunc(frontDeskDigestSpec, s.frontDeskDigestJob); err != nil {
		return fmt.Errorf("failed to schedule front desk digest job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// dayRolloverJob drops cached responses once the calendar day changes,
// since today's arrivals and departures are different lists now.
func (s *CronService) dayRolloverJob() {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to invalidate response cache at day rollover")
		return
	}
	s.logger.WithField("date", s.bookingService.Today().String()).Info("Response cache invalidated for new day")
}

// frontDeskDigestJob logs how many guests arrive and leave today
func (s *CronService) frontDeskDigestJob() {
	startTime := time.Now()

	arrivals, err := s.bookingService.GetTodayCheckIns()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load today's check-ins")
		return
	}
	departures, err := s.bookingService.GetTodayCheckOuts()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load today's check-outs")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"date":       s.bookingService.Today().String(),
		"check_ins":  len(arrivals),
		"check_outs": len(departures),
		"duration":   time.Since(startTime).String(),
	}).Info("Front desk digest")
}

// GetJobStatus returns the scheduled jobs and their next run times
func (s *CronService) GetJobStatus() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"id":       entry.ID,
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
