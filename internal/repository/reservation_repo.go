package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"hospedaria/internal/db"
	"hospedaria/internal/entities"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// CreateBooking insere a reserva com o id gerado no cliente. Conflito de id
// volta como erro; o orquestrador nunca tenta de novo com o mesmo id.
func (r *ReservationRepository) CreateBooking(b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(id, user_id, property_id, check_in_date, nights, price_per_night, total_price,
		 guest_name, guest_email, guest_phone, guest_cpf, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.Exec(query,
		b.ID,
		b.UserID,
		b.PropertyID,
		b.CheckInDate,
		b.Nights,
		b.PricePerNight,
		b.TotalPrice,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.GuestCPF,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetBookingByID(id string) (*db.Booking, error) {
	var b db.Booking
	query := `
		SELECT b.id, b.user_id, b.property_id, COALESCE(p.title, ''), b.check_in_date, b.nights,
		       b.price_per_night, b.total_price, b.guest_name, b.guest_email, b.guest_phone,
		       b.guest_cpf, b.status, b.pix_txid, b.created_at, b.updated_at
		FROM bookings b
		LEFT JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`
	err := r.DB.QueryRow(query, id).Scan(
		&b.ID, &b.UserID, &b.PropertyID, &b.PropertyTitle, &b.CheckInDate, &b.Nights,
		&b.PricePerNight, &b.TotalPrice, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.GuestCPF, &b.Status, &b.PixTxID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking '%s' not found: %w", id, err)
		}
		return nil, fmt.Errorf("error querying booking: %w", err)
	}
	return &b, nil
}

func (r *ReservationRepository) UpdateBookingStatus(id, status string) error {
	result, err := r.DB.Exec(`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("booking '%s' not found", id)
	}
	return nil
}

// MarkBookingPaid registra o txid do PIX junto com a confirmação.
func (r *ReservationRepository) MarkBookingPaid(id, txid string) error {
	result, err := r.DB.Exec(
		`UPDATE bookings SET status = $1, pix_txid = $2, updated_at = NOW() WHERE id = $3`,
		db.StatusConfirmed, txid, id,
	)
	if err != nil {
		return fmt.Errorf("error confirming booking: %w", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("booking '%s' not found", id)
	}
	return nil
}

func (r *ReservationRepository) DeleteBookingByID(id string) error {
	_, err := r.DB.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	return nil
}

// ListBookings aplica filtros opcionais de data de check-in, cidade e status.
func (r *ReservationRepository) ListBookings(date, city, status string, limit, offset int) ([]entities.ReservationResponse, error) {
	query := `
	SELECT b.id, b.property_id, COALESCE(p.title, ''), b.check_in_date, b.nights,
	       b.price_per_night, b.total_price, b.guest_name, b.guest_email, b.guest_phone,
	       b.status, b.created_at, b.updated_at
	FROM bookings b
	LEFT JOIN properties p ON p.id = b.property_id
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND b.check_in_date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if city != "" {
		query += " AND p.city = $" + strconv.Itoa(idx)
		args = append(args, city)
		idx++
	}
	if status != "" {
		query += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY b.created_at DESC"
	query += " LIMIT $" + strconv.Itoa(idx) + " OFFSET $" + strconv.Itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var reservations []entities.ReservationResponse
	for rows.Next() {
		var res entities.ReservationResponse
		err := rows.Scan(
			&res.ID, &res.PropertyID, &res.PropertyTitle, &res.CheckInDate, &res.Nights,
			&res.PricePerNight, &res.TotalPrice, &res.GuestName, &res.GuestEmail, &res.GuestPhone,
			&res.Status, &res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepository) CountBookings(date, city, status string) (int64, error) {
	query := `
	SELECT COUNT(*)
	FROM bookings b
	LEFT JOIN properties p ON p.id = b.property_id
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND b.check_in_date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if city != "" {
		query += " AND p.city = $" + strconv.Itoa(idx)
		args = append(args, city)
		idx++
	}
	if status != "" {
		query += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, status)
	}

	var total int64
	if err := r.DB.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return total, nil
}
