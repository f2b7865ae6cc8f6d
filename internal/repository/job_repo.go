package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"hospedaria/internal/db"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetStalePendingBookingIDs busca reservas pendentes criadas antes do
// instante dado e que nunca receberam pagamento.
func (r *JobRepository) GetStalePendingBookingIDs(before time.Time) ([]string, error) {
	query := `SELECT id FROM bookings WHERE status IN ($1, $2) AND created_at < $3`
	rows, err := r.DB.Query(query, db.StatusPending, db.StatusAwaitingPayment, before)
	if err != nil {
		return nil, fmt.Errorf("error querying stale pending bookings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// GetConfirmedBookingIDsPastCheckout busca reservas confirmadas cuja
// estadia já terminou (check-in + diárias no passado).
func (r *JobRepository) GetConfirmedBookingIDsPastCheckout() ([]string, error) {
	query := `
		SELECT id FROM bookings
		WHERE status = $1
		AND check_in_date + (nights * INTERVAL '1 day') < NOW()`
	rows, err := r.DB.Query(query, db.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("error querying finished stays: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateBookingStatuses atualiza o estado de uma lista de reservas de uma vez.
func (r *JobRepository) UpdateBookingStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}
