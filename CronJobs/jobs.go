package CronJobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"KidGrow/Assignments"
	"KidGrow/Notifications"
)

// AssignmentScheduler runs the daily assignment sweep on a fixed schedule.
// The sweep is idempotent, so the scheduler only has to fire it "at least
// once near the target local time" — a missed or doubled trigger cannot
// corrupt anything.
type AssignmentScheduler struct {
	cronScheduler  *cron.Cron
	service        *Assignments.Service
	runImmediately bool
	jobID          cron.EntryID
}

// NewAssignmentScheduler creates a scheduler bound to the sweep's fixed
// timezone, so "06:00" means 06:00 in that zone regardless of where the
// server runs.
func NewAssignmentScheduler(service *Assignments.Service, runImmediately bool) *AssignmentScheduler {
	return &AssignmentScheduler{
		cronScheduler:  cron.New(cron.WithSeconds(), cron.WithLocation(service.Location)),
		service:        service,
		runImmediately: runImmediately,
	}
}

// Start schedules the daily sweep at 06:00 zone-local time
func (s *AssignmentScheduler) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 6 * * *", func() {
		log.Println("Running scheduled daily assignment sweep")
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	fmt.Println("Assignment scheduler started - will run daily at 6:00 AM", s.service.Location)

	if s.runImmediately {
		fmt.Println("Running initial assignment sweep")
		s.runSweep()
	}
	return nil
}

// Stop terminates the scheduler
func (s *AssignmentScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Assignment scheduler stopped")
	}
}

// UpdateSchedule changes the sweep schedule
// Format: "0 0 6 * * *" = At 06:00:00 AM every day
func (s *AssignmentScheduler) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled daily assignment sweep")
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Assignment sweep schedule updated to: %s\n", schedule)
	return nil
}

// RunManualSweep executes a sweep outside the schedule
func (s *AssignmentScheduler) RunManualSweep() {
	log.Println("Running manual assignment sweep")
	s.runSweep()
}

func (s *AssignmentScheduler) runSweep() {
	count, err := s.service.RunDailySweep()
	if err != nil {
		log.Printf("Error in assignment sweep: %v\n", err)
		return
	}
	log.Printf("Successfully completed assignment sweep for %d children", count)

	if count > 0 && Notifications.Enabled() {
		Notifications.NotifyDailyTasksReady(s.service.DB, s.service.Today())
	}
}
