package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled jobs: the daily sweep that flips
// unpaid EMIs past their due date to OVERDUE.
type CronService struct {
	cron  *cron.Cron
	loans *LoanService
}

// NewCronService creates a new cron service
func NewCronService(loans *LoanService) *CronService {
	return &CronService{
		cron:  cron.New(),
		loans: loans,
	}
}

// Start registers the jobs and begins the scheduler
func (s *CronService) Start() {
	// Daily at 01:00 server time
	_, err := s.cron.AddFunc("0 1 * * *", s.sweepOverdueEMIs)
	if err != nil {
		log.Printf("cron: failed to register EMI sweep: %v", err)
		return
	}

	s.cron.Start()
	log.Println("Cron scheduler started")
}

// Stop halts the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronService) sweepOverdueEMIs() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	changed, err := s.loans.MarkOverdueEMIs(ctx, time.Now())
	if err != nil {
		log.Printf("cron: EMI sweep failed: %v", err)
		return
	}
	if changed > 0 {
		log.Printf("cron: marked %d EMIs overdue", changed)
	}
}
