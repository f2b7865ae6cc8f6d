package service

import (
	"fmt"
	"log"
	"time"

	"hospedaria/internal/db"
	"hospedaria/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// ExpireStalePendingBookings marca como expiradas as reservas que ficaram
// aguardando pagamento além do prazo. O registro nunca é apagado: o
// histórico da tentativa continua consultável.
func (s *JobService) ExpireStalePendingBookings(ttl time.Duration) error {
	log.Println("Cron Job: Checking for stale pending bookings...")

	before := time.Now().UTC().Add(-ttl)
	ids, err := s.Repo.GetStalePendingBookingIDs(before)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending bookings: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No stale pending bookings found.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'expired'. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateBookingStatuses(ids, db.StatusExpired); err != nil {
		return fmt.Errorf("cron job: failed to expire bookings: %w", err)
	}
	return nil
}

// MarkCompletedStays atualiza reservas confirmadas cuja estadia terminou.
func (s *JobService) MarkCompletedStays() error {
	log.Println("Cron Job: Checking for finished stays...")

	ids, err := s.Repo.GetConfirmedBookingIDsPastCheckout()
	if err != nil {
		return fmt.Errorf("cron job: failed to get finished stays: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No finished stays found.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateBookingStatuses(ids, db.StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to complete bookings: %w", err)
	}
	return nil
}
